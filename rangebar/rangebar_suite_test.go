// Copyright (c) 2026 rangebar-go Authors

package rangebar_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRangebar(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "rangebar suite")
}

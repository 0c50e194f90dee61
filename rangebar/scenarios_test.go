// Copyright (c) 2026 rangebar-go Authors
//
// Scenarios S1-S5 from the range-bar specification, at theta = 0.8%
// (threshold_bps = 80).

package rangebar_test

import (
	"github.com/eon-labs/rangebar-go/fixedpoint"
	"github.com/eon-labs/rangebar-go/rangebar"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const thresholdBps80 uint32 = 80

func mustTrade(aggID int64, price string, volume string, tsMs int64, isBuyerMaker bool) rangebar.TradeRecord {
	p, err := fixedpoint.Parse(price)
	Expect(err).To(BeNil())
	v, err := fixedpoint.Parse(volume)
	Expect(err).To(BeNil())
	return rangebar.TradeRecord{
		AggTradeID:   aggID,
		Price:        p,
		Volume:       v,
		FirstTradeID: aggID,
		LastTradeID:  aggID,
		TimestampMs:  tsMs,
		IsBuyerMaker: isBuyerMaker,
	}
}

var _ = Describe("RangeBarState", func() {
	var state *rangebar.RangeBarState

	BeforeEach(func() {
		var err error
		state, err = rangebar.NewRangeBarState(thresholdBps80)
		Expect(err).To(BeNil())
	})

	Context("S1 - single trade, no bar closes", func() {
		It("only emits the bar on flush", func() {
			var out []rangebar.RangeBar
			trade := mustTrade(1, "50000.00000000", "1.5", 1000, false)
			Expect(state.Ingest(trade, &out)).To(Succeed())
			Expect(out).To(BeEmpty())

			state.Flush(&out)
			Expect(out).To(HaveLen(1))
			bar := out[0]
			Expect(bar.Open.Format()).To(Equal("50000"))
			Expect(bar.High.Format()).To(Equal("50000"))
			Expect(bar.Low.Format()).To(Equal("50000"))
			Expect(bar.Close.Format()).To(Equal("50000"))
			Expect(bar.Volume.Format()).To(Equal("1.5"))
			Expect(bar.TradeCount).To(Equal(uint64(1)))
		})
	})

	Context("S2 - upward breach", func() {
		It("closes inclusively on the breaching trade", func() {
			var out []rangebar.RangeBar
			trades := []rangebar.TradeRecord{
				mustTrade(1, "100.00000000", "1", 1000, false),
				mustTrade(2, "100.30000000", "1", 1001, false),
				mustTrade(3, "100.50000000", "1", 1002, false),
				mustTrade(4, "100.80000001", "1", 1003, false),
			}
			for _, tr := range trades {
				Expect(state.Ingest(tr, &out)).To(Succeed())
			}
			Expect(out).To(HaveLen(1))
			bar := out[0]
			Expect(bar.Open.Format()).To(Equal("100"))
			Expect(bar.High.Format()).To(Equal("100.80000001"))
			Expect(bar.Low.Format()).To(Equal("100"))
			Expect(bar.Close.Format()).To(Equal("100.80000001"))
			Expect(bar.TradeCount).To(Equal(uint64(4)))
			Expect(state.IsOpen()).To(BeFalse())
		})
	})

	Context("S3 - downward breach", func() {
		It("closes inclusively on the breaching trade", func() {
			var out []rangebar.RangeBar
			trades := []rangebar.TradeRecord{
				mustTrade(1, "100.00000000", "1", 1000, false),
				mustTrade(2, "99.80000000", "1", 1001, false),
				mustTrade(3, "99.50000000", "1", 1002, false),
				mustTrade(4, "99.19999999", "1", 1003, false),
			}
			for _, tr := range trades {
				Expect(state.Ingest(tr, &out)).To(Succeed())
			}
			Expect(out).To(HaveLen(1))
			bar := out[0]
			Expect(bar.Low.Format()).To(Equal("99.19999999"))
			Expect(bar.Close.Format()).To(Equal("99.19999999"))
		})
	})

	Context("S4 - exact-boundary non-breach", func() {
		It("keeps the bar open when price equals a bound exactly", func() {
			var out []rangebar.RangeBar
			Expect(state.Ingest(mustTrade(1, "100.00000000", "1", 1000, false), &out)).To(Succeed())
			Expect(state.Ingest(mustTrade(2, "100.80000000", "1", 1001, false), &out)).To(Succeed())
			Expect(out).To(BeEmpty())
			Expect(state.IsOpen()).To(BeTrue())

			lower, upper, ok := state.Bounds()
			Expect(ok).To(BeTrue())
			Expect(lower.Format()).To(Equal("99.2"))
			Expect(upper.Format()).To(Equal("100.8"))
		})
	})

	Context("S5 - two consecutive bars", func() {
		It("opens the second bar on the trade after the breach", func() {
			var out []rangebar.RangeBar
			Expect(state.Ingest(mustTrade(1, "100.00000000", "1", 1000, false), &out)).To(Succeed())
			Expect(state.Ingest(mustTrade(2, "100.81000000", "1", 1001, false), &out)).To(Succeed())
			Expect(out).To(HaveLen(1))
			Expect(state.IsOpen()).To(BeFalse())

			Expect(state.Ingest(mustTrade(3, "100.00000000", "1", 1002, false), &out)).To(Succeed())
			Expect(out).To(HaveLen(1)) // no new bar yet, second one just opened
			Expect(state.IsOpen()).To(BeTrue())

			lower, upper, ok := state.Bounds()
			Expect(ok).To(BeTrue())
			Expect(lower.Format()).To(Equal("99.2"))
			Expect(upper.Format()).To(Equal("100.8"))

			state.Flush(&out)
			Expect(out).To(HaveLen(2))
			Expect(out[1].TradeCount).To(Equal(uint64(1)))
			Expect(out[1].Open.Format()).To(Equal("100"))
		})
	})

	Context("invalid trades", func() {
		It("rejects a non-increasing agg_trade_id", func() {
			var out []rangebar.RangeBar
			Expect(state.Ingest(mustTrade(5, "100", "1", 1000, false), &out)).To(Succeed())
			err := state.Ingest(mustTrade(5, "100.1", "1", 1001, false), &out)
			Expect(err).To(MatchError(rangebar.ErrInvalidTrade))
		})

		It("rejects a timestamp before the open bar's open time", func() {
			var out []rangebar.RangeBar
			Expect(state.Ingest(mustTrade(1, "100", "1", 1000, false), &out)).To(Succeed())
			err := state.Ingest(mustTrade(2, "100.1", "1", 999, false), &out)
			Expect(err).To(MatchError(rangebar.ErrInvalidTrade))
		})
	})

	Context("threshold validation", func() {
		It("rejects bps outside [1, 10000]", func() {
			_, err := rangebar.NewRangeBarState(0)
			Expect(err).To(MatchError(rangebar.ErrInvalidThreshold))

			_, err = rangebar.NewRangeBarState(10_001)
			Expect(err).To(MatchError(rangebar.ErrInvalidThreshold))
		})
	})
})

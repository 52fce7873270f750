package decision_test

import (
	"testing"

	"github.com/halcyonfi/verdict/internal/domain/decision"
	"github.com/smartystreets/goconvey/convey"
)

func TestFromTotal(t *testing.T) {
	convey.Convey("Given the composite score thresholds", t, func() {
		convey.Convey("When the total is above 750", func() {
			convey.Convey("Then it should be approved", func() {
				convey.So(decision.FromTotal(751), convey.ShouldEqual, decision.Approved)
				convey.So(decision.FromTotal(900), convey.ShouldEqual, decision.Approved)
				convey.So(decision.FromTotal(1000), convey.ShouldEqual, decision.Approved)
			})
		})

		convey.Convey("When the total sits on or between the boundaries", func() {
			convey.Convey("Then 750 and 600 should both be reviewed", func() {
				convey.So(decision.FromTotal(750), convey.ShouldEqual, decision.Review)
				convey.So(decision.FromTotal(700), convey.ShouldEqual, decision.Review)
				convey.So(decision.FromTotal(600), convey.ShouldEqual, decision.Review)
			})
		})

		convey.Convey("When the total is below 600", func() {
			convey.Convey("Then it should be rejected", func() {
				convey.So(decision.FromTotal(599), convey.ShouldEqual, decision.Rejected)
				convey.So(decision.FromTotal(0), convey.ShouldEqual, decision.Rejected)
			})
		})

		convey.Convey("When classifying any total in range", func() {
			convey.Convey("Then the result should always be a valid decision", func() {
				for total := 0; total <= 1000; total += 25 {
					convey.So(decision.FromTotal(total).Valid(), convey.ShouldBeTrue)
				}
			})
		})
	})
}

func TestDecisionValid(t *testing.T) {
	convey.Convey("Given decision values", t, func() {
		convey.Convey("Then the three constants should be valid", func() {
			convey.So(decision.Approved.Valid(), convey.ShouldBeTrue)
			convey.So(decision.Review.Valid(), convey.ShouldBeTrue)
			convey.So(decision.Rejected.Valid(), convey.ShouldBeTrue)
		})

		convey.Convey("Then anything else should be invalid", func() {
			convey.So(decision.Decision("").Valid(), convey.ShouldBeFalse)
			convey.So(decision.Decision("approved").Valid(), convey.ShouldBeFalse)
			convey.So(decision.Decision("MAYBE").Valid(), convey.ShouldBeFalse)
		})

		convey.Convey("Then String should return the wire form", func() {
			convey.So(decision.Approved.String(), convey.ShouldEqual, "APPROVED")
			convey.So(decision.Review.String(), convey.ShouldEqual, "REVIEW")
			convey.So(decision.Rejected.String(), convey.ShouldEqual, "REJECTED")
		})
	})
}

package scoring_test

import (
	"errors"
	"testing"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScoreZeroCases(t *testing.T) {
	Convey("Given the scoring curve", t, func() {
		Convey("When the level is past the legacy rank", func() {
			Convey("Then every percent scores zero", func() {
				for _, p := range []int{0, 50, 99, 100} {
					So(scoring.Score(101, p, 0), ShouldEqual, 0)
					So(scoring.Score(250, p, 50), ShouldEqual, 0)
				}
			})
		})

		Convey("When the percent is below the qualifying threshold", func() {
			Convey("Then it scores zero on every rank", func() {
				for rank := 1; rank <= scoring.LegacyRank; rank++ {
					So(scoring.Score(rank, 49, 50), ShouldEqual, 0)
					So(scoring.Score(rank, 0, 1), ShouldEqual, 0)
				}
			})
		})

		Convey("When the rank is not positive", func() {
			Convey("Then it scores zero", func() {
				So(scoring.Score(0, 100, 50), ShouldEqual, 0)
				So(scoring.Score(-3, 100, 50), ShouldEqual, 0)
			})
		})
	})
}

func TestScoreMonotonicity(t *testing.T) {
	Convey("Given qualifying runs", t, func() {
		Convey("When the rank gets worse at a fixed percent", func() {
			Convey("Then the score strictly decreases", func() {
				for _, q := range []int{0, 30, 50, 100} {
					for _, p := range []int{q, (q + 100) / 2, 100} {
						for rank := 1; rank < scoring.LegacyRank; rank++ {
							So(scoring.Score(rank, p, q), ShouldBeGreaterThan, scoring.Score(rank+1, p, q))
						}
					}
				}
			})
		})

		Convey("When the percent grows at a fixed rank", func() {
			Convey("Then the score never decreases", func() {
				for _, q := range []int{0, 40, 57, 99} {
					for _, rank := range []int{1, 2, 25, 75, 100} {
						for p := q; p < 100; p++ {
							So(scoring.Score(rank, p, q), ShouldBeLessThanOrEqualTo, scoring.Score(rank, p+1, q))
						}
					}
				}
			})
		})

		Convey("When comparing the threshold run with a full run", func() {
			Convey("Then the full run is worth at least as much", func() {
				for _, q := range []int{0, 1, 50, 100} {
					for rank := 1; rank <= scoring.LegacyRank; rank++ {
						So(scoring.Score(rank, q, q), ShouldBeLessThanOrEqualTo, scoring.Score(rank, 100, q))
					}
				}
			})
		})

		Convey("Then scores are never negative", func() {
			for rank := 1; rank <= scoring.LegacyRank; rank++ {
				So(scoring.Score(rank, 100, 100), ShouldBeGreaterThan, 0)
				So(scoring.Score(rank, 0, 0), ShouldBeGreaterThan, 0)
			}
		})
	})
}

func TestScoreValues(t *testing.T) {
	Convey("Given the top of the list", t, func() {
		Convey("Then rank one at 100% is worth the base value", func() {
			So(scoring.Score(1, 100, 50), ShouldEqual, 200)
		})

		Convey("Then the qualifying percent does not change a full run", func() {
			So(scoring.Score(10, 100, 20), ShouldEqual, scoring.Score(10, 100, 80))
		})

		Convey("Then a partial run keeps two thirds of the interpolated value", func() {
			// (60 - 49) / (100 - 49) of 200, then two thirds.
			So(scoring.Score(1, 60, 50), ShouldAlmostEqual, 200.0*11/51*2/3, 1e-9)
		})
	})
}

func TestRound(t *testing.T) {
	Convey("Given values with many decimals", t, func() {
		Convey("Then they are rounded to three places", func() {
			So(scoring.Round(1.23449), ShouldEqual, 1.234)
			So(scoring.Round(2.0006), ShouldEqual, 2.001)
			So(scoring.Round(200), ShouldEqual, 200)
			So(scoring.Round(0), ShouldEqual, 0)
		})
	})
}

func TestPackPolicy(t *testing.T) {
	Convey("Given pack policy names", t, func() {
		Convey("When parsing known names", func() {
			none, err := scoring.ParsePackPolicy("")
			So(err, ShouldBeNil)
			So(none, ShouldEqual, scoring.PackPolicyNone)

			half, err := scoring.ParsePackPolicy(" HALF ")
			So(err, ShouldBeNil)
			So(half, ShouldEqual, scoring.PackPolicyHalf)

			Convey("Then the multipliers match the policies", func() {
				So(none.Multiplier(), ShouldEqual, 0)
				So(half.Multiplier(), ShouldEqual, 0.5)
			})
		})

		Convey("When parsing an unknown name", func() {
			_, err := scoring.ParsePackPolicy("double")

			Convey("Then it wraps ErrInvalidPackPolicy", func() {
				So(errors.Is(err, scoring.ErrInvalidPackPolicy), ShouldBeTrue)
			})
		})
	})
}

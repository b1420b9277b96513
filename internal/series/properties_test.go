package series_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/filtvec/internal/series"
)

// randomWalk appends a mix of operations at irregular, sometimes stale,
// timestamps.
func randomWalk(s *series.Series, rng *rand.Rand, steps int) {
	ts := s.LastT()
	vals := make([]float64, s.Dim())
	for i := 0; i < steps; i++ {
		ts += rng.Float64()*0.1 - 0.02
		for j := range vals {
			vals[j] = rng.NormFloat64()
		}
		switch rng.Intn(4) {
		case 0:
			_ = s.Push(ts, vals...)
		case 1:
			_ = s.Set(ts, vals...)
		case 2:
			_ = s.Move(ts, vals...)
		default:
			s.Idle(ts)
		}
	}
}

func finite(v []float64) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

var _ = Describe("Series", func() {
	var (
		s   *series.Series
		rng *rand.Rand
	)

	BeforeEach(func() {
		var err error
		s, err = series.New(series.WithDimension(3))
		Expect(err).NotTo(HaveOccurred())
		rng = rand.New(rand.NewSource(GinkgoRandomSeed()))
	})

	Describe("time ordering", func() {
		It("keeps timestamps strictly increasing under noisy input", func() {
			randomWalk(s, rng, 500)
			for i := 1; i < s.Len(); i++ {
				Expect(s.At(i).T).To(BeNumerically(">", s.At(i-1).T))
			}
			Expect(s.Dropped()).To(BeNumerically(">", 0))
		})

		It("ignores appends at or before the last time", func() {
			Expect(s.Push(1, 1, 2, 3)).To(Succeed())
			n, last := s.Len(), s.LastT()

			Expect(s.Push(1, 9, 9, 9)).To(Succeed())
			Expect(s.Move(0.5, 1, 1, 1)).To(Succeed())
			s.Idle(-4)

			Expect(s.Len()).To(Equal(n))
			Expect(s.LastT()).To(Equal(last))
			Expect(s.Dropped()).To(Equal(3))
		})
	})

	Describe("interpolation", func() {
		BeforeEach(func() {
			randomWalk(s, rng, 200)
		})

		It("passes through every knot exactly", func() {
			for i := 0; i < s.Len(); i++ {
				smp := s.At(i)
				Expect(s.Curve(smp.T)).To(Equal(smp.Value.Slice(s.Dim())))
			}
		})

		It("extrapolates linearly past the newest sample", func() {
			last := s.At(s.Len() - 1)
			for _, dt := range []float64{0, 0.25, 3} {
				got := s.Curve(last.T + dt)
				for i := range got {
					want := last.Value[i] + dt*last.Velocity[i]
					Expect(got[i]).To(BeNumerically("~", want, 1e-9*(1+math.Abs(want))))
				}
				Expect(s.DCurve(last.T + dt)).To(Equal(last.Velocity.Slice(s.Dim())))
			}
		})

		It("never produces NaN or Inf for finite query times", func() {
			first, last := s.At(0).T, s.LastT()
			for i := 0; i < 1000; i++ {
				q := first - 1 + rng.Float64()*(last-first+2)
				Expect(finite(s.Curve(q))).To(BeTrue())
				Expect(finite(s.DCurve(q))).To(BeTrue())
			}
		})
	})

	Describe("Flush", func() {
		BeforeEach(func() {
			randomWalk(s, rng, 200)
		})

		It("is idempotent", func() {
			boundary := s.At(s.Len() / 2).T
			s.Flush(boundary)
			n := s.Len()
			s.Flush(boundary)
			Expect(s.Len()).To(Equal(n))
		})

		It("does not change queries at or after the boundary", func() {
			first, last := s.At(0).T, s.LastT()
			boundary := first + (last-first)*0.6

			probes := make([]float64, 50)
			want := make([][]float64, len(probes))
			wantD := make([][]float64, len(probes))
			for i := range probes {
				probes[i] = boundary + float64(i)*(last-boundary+1)/float64(len(probes))
				want[i] = s.AppendCurve(nil, probes[i])
				wantD[i] = s.AppendDCurve(nil, probes[i])
			}

			s.Flush(boundary)

			for i, q := range probes {
				Expect(s.Curve(q)).To(Equal(want[i]))
				Expect(s.DCurve(q)).To(Equal(wantD[i]))
			}
		})

		It("keeps the newest sample", func() {
			last := s.LastT()
			s.Flush(last + 100)
			Expect(s.Len()).To(Equal(1))
			Expect(s.LastT()).To(Equal(last))
		})
	})

	Describe("Stable", func() {
		It("follows the velocity of the newest sample", func() {
			Expect(s.Push(1, 1, 0, 0)).To(Succeed())
			Expect(s.Stable()).To(BeFalse())
			Expect(s.Set(2, 1, 0, 0)).To(Succeed())
			Expect(s.Stable()).To(BeTrue())
			Expect(s.Move(3, 0, 0, 1)).To(Succeed())
			Expect(s.Stable()).To(BeFalse())
			s.Idle(4)
			Expect(s.Stable()).To(BeTrue())
		})
	})

	Describe("arity", func() {
		It("rejects the wrong number of components", func() {
			Expect(s.Push(1, 1, 2)).To(MatchError(series.ErrArityMismatch))
			Expect(s.Len()).To(Equal(1))
		})
	})
})

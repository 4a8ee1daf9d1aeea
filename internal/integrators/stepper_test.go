package integrators

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/equations"
)

var _ = Describe("Stepper contract", func() {
	for _, s := range []dynamo.Stepper{NewEuler(), NewRK2(), NewRK4()} {
		s := s
		Describe(s.Name(), func() {
			grid := dynamo.Linspace(0, 2, 11)

			It("returns one state per grid point seeded with x0", func() {
				x0 := 0.1 + 0.2
				x := s.Integrate(equations.Cubic, x0, grid)
				Expect(x).To(HaveLen(len(grid)))
				Expect(x[0]).To(Equal(x0))
			})

			It("returns [x0] for a single-point grid", func() {
				x := s.Integrate(equations.Cubic, 1.5, dynamo.Grid{3})
				Expect(x).To(Equal(dynamo.Trajectory{1.5}))
			})

			It("is deterministic", func() {
				a := s.Integrate(equations.Cubic, 0.5, grid)
				b := s.Integrate(equations.Cubic, 0.5, grid)
				for i := range a {
					Expect(math.Float64bits(a[i])).To(Equal(math.Float64bits(b[i])))
				}
			})

			It("keeps a constant trajectory under a zero derivative", func() {
				for _, g := range []dynamo.Grid{grid, {0, 0.001, 0.002}, {-5, 5, 15}} {
					x := s.Integrate(equations.Zero, -2.25, g)
					for _, v := range x {
						Expect(v).To(Equal(-2.25))
					}
				}
			})

			It("evaluates the derivative Stages() times per step", func() {
				f, calls := dynamo.CountCalls(equations.Cubic)
				s.Integrate(f, 0, grid)
				Expect(calls.Load()).To(Equal(int64(s.Stages() * (len(grid) - 1))))
			})

			It("matches a single Step on a two-point grid", func() {
				x := s.Integrate(equations.Cubic, 0.4, dynamo.Grid{1, 1.25})
				Expect(x[1]).To(Equal(s.Step(equations.Cubic, 0.4, 1, 0.25)))
			})

			It("tracks the decay solution within h^order", func() {
				eq, err := equations.Lookup("decay")
				Expect(err).NotTo(HaveOccurred())
				x := s.Integrate(eq.F, 1, grid)
				Expect(x.Last()).To(BeNumerically("~", math.Exp(-2), math.Pow(0.2, float64(s.Order()))))
			})
		})
	}
})

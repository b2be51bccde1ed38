package geometry_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dmolina-v/efield/internal/geometry"
	"github.com/dmolina-v/efield/internal/vec"
)

var _ = Describe("Config validation", func() {
	It("accepts the defaults of every kind", func() {
		for _, kind := range geometry.Kinds() {
			Expect(geometry.Default(kind).Validate()).To(Succeed(), string(kind))
		}
	})

	It("rejects an unknown kind", func() {
		cfg := geometry.Default(geometry.Plate)
		cfg.Kind = "torus"
		Expect(cfg.Validate()).To(MatchError(geometry.ErrUnknownKind))
	})

	It("rejects a non-positive discretization count", func() {
		cfg := geometry.Default(geometry.Sphere)
		cfg.N = 0
		Expect(cfg.Validate()).To(MatchError(geometry.ErrInvalidCount))
	})

	It("rejects a non-positive permittivity", func() {
		cfg := geometry.Default(geometry.Ring)
		cfg.Epsilon0 = 0
		Expect(cfg.Validate()).To(MatchError(geometry.ErrInvalidPermittivity))
	})

	It("rejects missing shape parameters", func() {
		cfg := geometry.Default(geometry.Sphere)
		cfg.Radius = 0
		Expect(cfg.Validate()).To(MatchError(geometry.ErrInvalidShape))

		cfg = geometry.Default(geometry.ParallelPlates)
		cfg.Distance = -1
		Expect(cfg.Validate()).To(MatchError(geometry.ErrInvalidShape))
	})
})

var _ = Describe("Discretization", func() {
	It("is deterministic for identical inputs", func() {
		cfg := geometry.Default(geometry.Cylinder)
		Expect(cfg.Discretize()).To(Equal(cfg.Discretize()))
	})

	It("preserves total charge for flat and cylindrical surfaces", func() {
		for _, kind := range []geometry.Kind{geometry.Plate, geometry.Cylinder, geometry.Ring} {
			cfg := geometry.Default(kind)
			want := cfg.Sigma * cfg.Measure()
			Expect(cfg.TotalCharge()).To(BeNumerically("~", want, math.Abs(want)*1e-12), string(kind))
		}
	})

	It("converges to sigma times shell area for the sphere", func() {
		cfg := geometry.Default(geometry.Sphere)
		want := cfg.Sigma * cfg.Measure()

		cfg.N = 8
		coarse := math.Abs(cfg.TotalCharge() - want)
		cfg.N = 32
		fine := math.Abs(cfg.TotalCharge() - want)

		Expect(fine).To(BeNumerically("<", coarse))
		Expect(fine).To(BeNumerically("<", math.Abs(want)*0.01))
	})

	It("cancels the total charge of inverted pairs", func() {
		for _, kind := range []geometry.Kind{geometry.ParallelPlates, geometry.TwoSpheres} {
			cfg := geometry.Default(kind)
			cfg.InvertSign = true
			scale := math.Abs(cfg.Sigma * cfg.Measure())
			Expect(cfg.TotalCharge()).To(BeNumerically("~", 0, scale*1e-12), string(kind))

			cfg.InvertSign = false
			want := cfg.Sigma * cfg.Measure()
			Expect(cfg.TotalCharge()).To(BeNumerically("~", want, scale*1e-12), string(kind))
		}
	})

	It("flips every element charge when sigma flips", func() {
		cfg := geometry.Default(geometry.Ring)
		pos := cfg.Discretize()
		cfg.Sigma = -cfg.Sigma
		neg := cfg.Discretize()

		Expect(neg).To(HaveLen(len(pos)))
		for i := range pos {
			Expect(neg[i].Pos).To(Equal(pos[i].Pos))
			Expect(neg[i].Charge).To(Equal(-pos[i].Charge))
		}
	})
})

var _ = Describe("Collision predicates", func() {
	It("detects containment in the sphere", func() {
		cfg := geometry.Default(geometry.Sphere)
		Expect(cfg.Collides(vec.Vec3{})).To(BeTrue())
		Expect(cfg.Collides(vec.Vec3{X: cfg.Radius})).To(BeTrue())
		Expect(cfg.Collides(vec.Vec3{X: cfg.Radius * 1.01})).To(BeFalse())
	})

	It("detects contact with the plate only within its footprint", func() {
		cfg := geometry.Default(geometry.Plate)
		Expect(cfg.Collides(vec.Vec3{Z: 0.01})).To(BeTrue())
		Expect(cfg.Collides(vec.Vec3{X: 0.6, Z: 0.01})).To(BeFalse())
		Expect(cfg.Collides(vec.Vec3{Z: 0.5})).To(BeFalse())
	})

	It("detects the cylinder body", func() {
		cfg := geometry.Default(geometry.Cylinder)
		Expect(cfg.Collides(vec.Vec3{X: 0.5, Z: 0.9})).To(BeTrue())
		Expect(cfg.Collides(vec.Vec3{X: 0.5, Z: 1.1})).To(BeFalse())
		Expect(cfg.Collides(vec.Vec3{X: 1.2})).To(BeFalse())
	})

	It("detects the ring within its contact shell", func() {
		cfg := geometry.Default(geometry.Ring)
		Expect(cfg.Collides(vec.Vec3{X: cfg.Radius})).To(BeTrue())
		Expect(cfg.Collides(vec.Vec3{X: cfg.Radius, Z: 0.04})).To(BeTrue())
		Expect(cfg.Collides(vec.Vec3{})).To(BeFalse())
		Expect(cfg.Collides(vec.Vec3{X: cfg.Radius, Z: 0.1})).To(BeFalse())
	})

	It("keeps the gap between parallel plates open", func() {
		cfg := geometry.Default(geometry.ParallelPlates)
		Expect(cfg.Collides(vec.Vec3{})).To(BeFalse())
		Expect(cfg.Collides(vec.Vec3{Z: cfg.Distance / 2})).To(BeTrue())
		Expect(cfg.Collides(vec.Vec3{Z: -cfg.Distance})).To(BeTrue())
		Expect(cfg.Collides(vec.Vec3{X: 1.5, Z: cfg.Distance})).To(BeFalse())
	})

	It("detects either of the two spheres", func() {
		cfg := geometry.Default(geometry.TwoSpheres)
		Expect(cfg.Collides(vec.Vec3{X: cfg.Distance / 2})).To(BeTrue())
		Expect(cfg.Collides(vec.Vec3{X: -cfg.Distance / 2})).To(BeTrue())
		Expect(cfg.Collides(vec.Vec3{})).To(BeFalse())
	})

	It("ignores density sign and discretization count", func() {
		cfg := geometry.Default(geometry.Sphere)
		p := vec.Vec3{X: 0.5}

		cfg.Sigma = -cfg.Sigma
		Expect(cfg.Collides(p)).To(BeTrue())

		cfg.N = 1
		Expect(cfg.Collides(p)).To(BeTrue())
	})
})

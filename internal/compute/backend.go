package compute

import (
	"github.com/dmolina-v/efield/internal/geometry"
	"github.com/dmolina-v/efield/internal/vec"
)

// Backend performs the O(N) superposition sums over charge elements.
// Implementations must be deterministic for a fixed element slice and
// must honor the rMin exclusion: elements closer than rMin to the
// evaluation point contribute nothing.
type Backend interface {
	Name() string

	// FieldSum returns the vector sum of k*q*(p-r)/|p-r|^3 over the elements.
	FieldSum(elems []geometry.Element, p vec.Vec3, k, rMin float64) vec.Vec3

	// PotentialSum returns the scalar sum of k*q/|p-r| over the elements.
	PotentialSum(elems []geometry.Element, p vec.Vec3, k, rMin float64) float64
}

var activeBackend Backend

func init() {
	activeBackend = NewCPUBackend()
}

func SetBackend(b Backend) {
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

package compute

import (
	"math"
	"runtime"
	"sync"

	"github.com/dmolina-v/efield/internal/geometry"
	"github.com/dmolina-v/efield/internal/vec"
)

// parallelThreshold is the element count below which chunking overhead
// outweighs the parallel speedup.
const parallelThreshold = 4096

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string { return "cpu" }

func (c *CPUBackend) FieldSum(elems []geometry.Element, p vec.Vec3, k, rMin float64) vec.Vec3 {
	if len(elems) < parallelThreshold || c.workers <= 1 {
		return fieldSerial(elems, p, k, rMin)
	}

	partials := make([]vec.Vec3, c.workers)
	c.chunked(len(elems), func(worker, start, end int) {
		partials[worker] = fieldSerial(elems[start:end], p, k, rMin)
	})

	// Combine in worker order so repeated calls sum identically.
	total := vec.Vec3{}
	for _, part := range partials {
		total = total.Add(part)
	}
	return total
}

func (c *CPUBackend) PotentialSum(elems []geometry.Element, p vec.Vec3, k, rMin float64) float64 {
	if len(elems) < parallelThreshold || c.workers <= 1 {
		return potentialSerial(elems, p, k, rMin)
	}

	partials := make([]float64, c.workers)
	c.chunked(len(elems), func(worker, start, end int) {
		partials[worker] = potentialSerial(elems[start:end], p, k, rMin)
	})

	total := 0.0
	for _, part := range partials {
		total += part
	}
	return total
}

func (c *CPUBackend) chunked(n int, fn func(worker, start, end int)) {
	chunkSize := (n + c.workers - 1) / c.workers

	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if start > n {
			start = n
		}
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(worker, s, e int) {
			defer wg.Done()
			fn(worker, s, e)
		}(w, start, end)
	}
	wg.Wait()
}

func fieldSerial(elems []geometry.Element, p vec.Vec3, k, rMin float64) vec.Vec3 {
	var ex, ey, ez float64

	for i := range elems {
		rx := p.X - elems[i].Pos.X
		ry := p.Y - elems[i].Pos.Y
		rz := p.Z - elems[i].Pos.Z
		r2 := rx*rx + ry*ry + rz*rz

		r := math.Sqrt(r2)
		if r < rMin {
			continue
		}

		factor := k * elems[i].Charge / (r2 * r)
		ex += factor * rx
		ey += factor * ry
		ez += factor * rz
	}

	return vec.Vec3{X: ex, Y: ey, Z: ez}
}

func potentialSerial(elems []geometry.Element, p vec.Vec3, k, rMin float64) float64 {
	v := 0.0

	for i := range elems {
		r := p.Distance(elems[i].Pos)
		if r < rMin {
			continue
		}
		v += k * elems[i].Charge / r
	}

	return v
}

package viz

import (
	"strings"

	"github.com/dmolina-v/efield/internal/geometry"
	"github.com/dmolina-v/efield/internal/vec"
)

// Canvas is a character grid over the x-z plane at y=0. World
// coordinates in [-extent, extent] on both axes map onto the grid,
// with z increasing upward.
type Canvas struct {
	w, h   int
	extent float64
	cells  [][]rune
}

func NewCanvas(w, h int, extent float64) *Canvas {
	c := &Canvas{w: w, h: h, extent: extent}
	c.cells = make([][]rune, h)
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for i := range row {
			row[i] = ' '
		}
	}
}

// Plot places ch at world position (x, z). Points outside the extent
// are dropped.
func (c *Canvas) Plot(x, z float64, ch rune) {
	col := int((x + c.extent) / (2 * c.extent) * float64(c.w-1))
	row := int((c.extent - z) / (2 * c.extent) * float64(c.h-1))
	if col < 0 || col >= c.w || row < 0 || row >= c.h {
		return
	}
	c.cells[row][col] = ch
}

// DrawGeometry marks every cell whose world position satisfies the
// collision predicate. The cross section is sampled at y=0.
func (c *Canvas) DrawGeometry(cfg geometry.Config) {
	for row := 0; row < c.h; row++ {
		z := c.extent - float64(row)/float64(c.h-1)*2*c.extent
		for col := 0; col < c.w; col++ {
			x := -c.extent + float64(col)/float64(c.w-1)*2*c.extent
			if cfg.Collides(vec.Vec3{X: x, Z: z}) {
				c.cells[row][col] = '#'
			}
		}
	}
}

// DrawTrail fades older positions through lighter glyphs.
func (c *Canvas) DrawTrail(trail []vec.Vec3) {
	glyphs := []rune{'.', ':', '*'}
	n := len(trail)
	for i, p := range trail {
		c.Plot(p.X, p.Z, glyphs[i*len(glyphs)/n])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

package tui

import (
	"math"

	"github.com/zeusync/sceneedit/internal/core/models"
)

// hudRows is the number of terminal rows reserved for the status line.
const hudRows = 1

// Projection maps the spawn area seen from above onto the terminal grid:
// world X runs along columns and world Z along rows.
type Projection struct {
	area   models.Box
	width  int
	height int
}

func NewProjection(area models.Box, width, height int) Projection {
	return Projection{area: area, width: width, height: height}
}

// Rows is the number of rows available to the scene.
func (p Projection) Rows() int { return max(p.height-hudRows, 1) }

func (p Projection) Cols() int { return max(p.width, 1) }

// InScene reports whether the cell belongs to the scene rather than the HUD.
func (p Projection) InScene(col, row int) bool {
	return col >= 0 && col < p.Cols() && row >= 0 && row < p.Rows()
}

// Cell returns the cell a world position falls into, clamped to the grid.
func (p Projection) Cell(pos models.Vector3) (col, row int) {
	lo, size := p.area.Min(), p.area.Size
	col = scaleToGrid(pos.X-lo.X, size.X, p.Cols())
	row = scaleToGrid(pos.Z-lo.Z, size.Z, p.Rows())
	return col, row
}

// World returns the ground point at the centre of a cell.
func (p Projection) World(col, row int) models.Vector3 {
	lo, size := p.area.Min(), p.area.Size
	return models.Vector3{
		X: lo.X + (float64(col)+0.5)/float64(p.Cols())*size.X,
		Y: p.Ground(),
		Z: lo.Z + (float64(row)+0.5)/float64(p.Rows())*size.Z,
	}
}

// Ground is the height of the floor under the spawn area.
func (p Projection) Ground() float64 { return p.area.Min().Y - 0.5 }

// CellSize is the world extent of one cell along X and Z.
func (p Projection) CellSize() (x, z float64) {
	return p.area.Size.X / float64(p.Cols()), p.area.Size.Z / float64(p.Rows())
}

func scaleToGrid(offset, size float64, cells int) int {
	if size <= 0 {
		return cells / 2
	}
	c := int(math.Floor(offset / size * float64(cells)))
	return min(max(c, 0), cells-1)
}

package tui

import (
	"math"
	"sort"

	"github.com/zeusync/sceneedit/internal/core/entity"
	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/ui"
)

// eyeHeight is how far above the ground pointer rays start.
const eyeHeight = 50.0

var _ ui.PointerSource = (*Pointer)(nil)

// Pointer is the mouse seen as a ray cast straight down into the scene.
// It is only touched from the loop thread.
type Pointer struct {
	projection Projection
	col, row   int
	scene      func() []*entity.Entity
}

func NewPointer(projection Projection) *Pointer {
	return &Pointer{projection: projection, col: -1, row: -1}
}

// Attach sets where the pointer finds entities to hit.
func (p *Pointer) Attach(scene func() []*entity.Entity) { p.scene = scene }

func (p *Pointer) Resize(width, height int) {
	p.projection = NewProjection(p.projection.area, width, height)
}

func (p *Pointer) MoveTo(col, row int) {
	p.col, p.row = col, row
}

func (p *Pointer) Projection() Projection { return p.projection }

func (p *Pointer) IsPointerOverUI() bool {
	return !p.projection.InScene(p.col, p.row)
}

func (p *Pointer) CurrentRay() models.Ray {
	ground := p.projection.World(p.col, p.row)
	return models.Ray{
		Origin:    models.Vector3{X: ground.X, Y: ground.Y + eyeHeight, Z: ground.Z},
		Direction: models.Down,
	}
}

// AllHits intersects a vertical ray with entity footprints and the ground,
// sorted far to near.
func (p *Pointer) AllHits(ray models.Ray, maxDistance float64, mask ui.LayerMask) []ui.Hit {
	var hits []ui.Hit

	if mask.Has(ui.LayerGround) {
		d := ray.Origin.Y - p.projection.Ground()
		if d >= 0 && d <= maxDistance {
			hits = append(hits, ui.Hit{Point: ray.PointAt(d), Distance: d, Layer: ui.LayerGround})
		}
	}

	if mask.Has(ui.LayerEntities) && p.scene != nil {
		cx, cz := p.projection.CellSize()
		for _, e := range p.scene() {
			pos := e.Position()
			half := e.Extent() / 2
			if math.Abs(pos.X-ray.Origin.X) > half+cx/2 || math.Abs(pos.Z-ray.Origin.Z) > half+cz/2 {
				continue
			}

			d := ray.Origin.Y - (pos.Y + half)
			if d < 0 || d > maxDistance {
				continue
			}
			hits = append(hits, ui.Hit{EntityID: e.ID(), Point: ray.PointAt(d), Distance: d, Layer: ui.LayerEntities})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance > hits[j].Distance })
	return hits
}

package ui

import (
	"github.com/zeusync/sceneedit/internal/core/models"
)

const DefaultRaycastDistance = 100.0

// Raycaster answers hit queries at the pointer.
type Raycaster struct {
	source      PointerSource
	maxDistance float64
}

func NewRaycaster(source PointerSource, maxDistance float64) *Raycaster {
	if maxDistance <= 0 {
		maxDistance = DefaultRaycastDistance
	}
	return &Raycaster{source: source, maxDistance: maxDistance}
}

func (r *Raycaster) Ray() models.Ray { return r.source.CurrentRay() }

func (r *Raycaster) IsOverUI() bool { return r.source.IsPointerOverUI() }

// Hit returns the nearest intersection on a layer in mask.
func (r *Raycaster) Hit(mask LayerMask) (Hit, bool) {
	var (
		best  Hit
		found bool
	)
	for _, h := range r.source.AllHits(r.source.CurrentRay(), r.maxDistance, mask) {
		if !mask.Has(h.Layer) || h.Distance > r.maxDistance {
			continue
		}
		if !found || h.Distance < best.Distance {
			best = h
			found = true
		}
	}
	return best, found
}

package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zeusync/sceneedit/internal/core/models"
)

var ErrUnknownLayer = errors.New("unknown layer")

// Phase is the stage of a single-pointer gesture.
type Phase uint8

const (
	PhaseBegan Phase = iota
	PhaseMoved
	PhaseStationary
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseMoved:
		return "moved"
	case PhaseStationary:
		return "stationary"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

type PointerEvent struct {
	Phase Phase
}

// Layer classifies hit surfaces.
type Layer uint8

const (
	LayerEntities Layer = iota
	LayerGround
)

type LayerMask uint32

const (
	MaskEntities LayerMask = 1 << LayerEntities
	MaskGround   LayerMask = 1 << LayerGround
	MaskAll      LayerMask = MaskEntities | MaskGround
)

func (m LayerMask) Has(l Layer) bool { return m&(1<<l) != 0 }

var layerNames = map[string]Layer{
	"entities": LayerEntities,
	"ground":   LayerGround,
}

// ParseLayerMask combines named layers into a mask.
func ParseLayerMask(names []string) (LayerMask, error) {
	var m LayerMask
	for _, name := range names {
		l, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
		}
		m |= 1 << l
	}
	return m, nil
}

// Hit is one ray intersection. EntityID is empty for non-entity surfaces.
type Hit struct {
	EntityID string
	Point    models.Vector3
	Distance float64
	Layer    Layer
}

// PointerSource turns the active pointer into rays and scene intersections.
type PointerSource interface {
	CurrentRay() models.Ray
	// AllHits returns every intersection of ray within maxDistance on the
	// layers in mask, sorted far to near.
	AllHits(ray models.Ray, maxDistance float64, mask LayerMask) []Hit
	IsPointerOverUI() bool
}

// Detached is a PointerSource for running without a pointer device. The
// pointer is always over UI and never hits anything.
type Detached struct{}

func (Detached) CurrentRay() models.Ray                       { return models.Ray{Direction: models.Down} }
func (Detached) AllHits(models.Ray, float64, LayerMask) []Hit { return nil }
func (Detached) IsPointerOverUI() bool                        { return true }

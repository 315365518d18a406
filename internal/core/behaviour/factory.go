package behaviour

import (
	"fmt"

	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

// Factory hands out fresh behaviour instances cloned from registered prototypes.
// One prototype per kind; the first registration wins.
type Factory struct {
	prototypes map[models.BehaviourKind]Behaviour
	order      []models.BehaviourKind
	logger     log.Log
}

func NewFactory(logger log.Log) *Factory {
	return &Factory{
		prototypes: make(map[models.BehaviourKind]Behaviour),
		logger:     logger,
	}
}

// Register adds a prototype. A second prototype of an already registered kind
// is rejected and the first one stays in place.
func (f *Factory) Register(prototype Behaviour) error {
	if prototype == nil {
		return ErrNilBehaviour
	}

	kind := prototype.Kind()
	if !kind.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}

	if _, exists := f.prototypes[kind]; exists {
		f.logger.Error("behaviour prototype already added, skipping", log.Stringer("kind", kind))
		return fmt.Errorf("%w: %s", ErrDuplicatePrototype, kind)
	}

	f.prototypes[kind] = prototype
	f.order = append(f.order, kind)
	return nil
}

// Create returns a new independent instance of the prototype registered for kind.
func (f *Factory) Create(kind models.BehaviourKind) (Behaviour, error) {
	prototype, ok := f.prototypes[kind]
	if !ok {
		f.logger.Error("cannot create behaviour", log.Stringer("kind", kind))
		return nil, fmt.Errorf("%w: %s", ErrUnknownPrototype, kind)
	}
	return Clone(prototype), nil
}

// Has reports whether a prototype is registered for kind.
func (f *Factory) Has(kind models.BehaviourKind) bool {
	_, ok := f.prototypes[kind]
	return ok
}

// Prototype returns the registered prototype itself, not a clone.
func (f *Factory) Prototype(kind models.BehaviourKind) (Behaviour, bool) {
	p, ok := f.prototypes[kind]
	return p, ok
}

// Kinds lists registered kinds in registration order.
func (f *Factory) Kinds() []models.BehaviourKind {
	out := make([]models.BehaviourKind, len(f.order))
	copy(out, f.order)
	return out
}

// Clone is the low-level copy primitive; it works on any prototype, registered or not.
func Clone(prototype Behaviour) Behaviour {
	if prototype == nil {
		return nil
	}
	return prototype.Clone()
}

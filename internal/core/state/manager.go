package state

import (
	"context"
	"errors"

	"github.com/cespare/xxhash/v2"
	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/entity"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/core/storage"
)

// DefaultKey is the storage key the scene document lives under.
const DefaultKey = "JSON"

const scaleTolerance = 1e-6

// Manager moves the live scene to and from the key-value store. The stored
// record is always replaced whole.
type Manager struct {
	store      storage.KeyValue
	key        string
	entities   *entity.Manager
	generator  *entity.Generator
	behaviours *behaviour.Factory
	verbose    bool
	logger     log.Log
}

type Option func(*Manager)

func WithKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.key = key
		}
	}
}

// WithVerbose reports save, load and clear at Info level.
func WithVerbose(verbose bool) Option {
	return func(m *Manager) { m.verbose = verbose }
}

func NewManager(
	store storage.KeyValue,
	entities *entity.Manager,
	generator *entity.Generator,
	behaviours *behaviour.Factory,
	logger log.Log,
	opts ...Option,
) *Manager {
	m := &Manager{
		store:      store,
		key:        DefaultKey,
		entities:   entities,
		generator:  generator,
		behaviours: behaviours,
		logger:     logger.Named("state"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Capture builds a snapshot of the live scene without persisting it.
func (m *Manager) Capture() Snapshot {
	snapshot := Snapshot{Entities: make([]EntityRecord, 0, m.entities.Len())}

	for _, e := range m.entities.Entities() {
		if !e.Kind().Valid() {
			m.logger.Error("entity kind not recognized, skipping", log.String("entity", e.ID()))
			continue
		}

		if !e.Scale().IsUniform(scaleTolerance) {
			m.logger.Warn("entity scale is not uniform, saving x axis",
				log.String("entity", e.ID()),
				log.Any("scale", e.Scale()),
			)
		}

		kinds := e.Behaviours().Kinds()
		records := make([]BehaviourRecord, 0, len(kinds))
		for _, k := range kinds {
			records = append(records, BehaviourRecord{Kind: k})
		}

		snapshot.Entities = append(snapshot.Entities, EntityRecord{
			ID:         e.ID(),
			Kind:       e.Kind(),
			Position:   e.Position(),
			Scale:      e.UniformScale(),
			Behaviours: records,
		})
	}

	return snapshot
}

// Save persists the live scene.
func (m *Manager) Save(ctx context.Context) error {
	snapshot := m.Capture()
	doc, err := snapshot.Encode()
	if err != nil {
		m.logger.Error("cannot encode scene", log.Error(err))
		return err
	}

	if err = m.store.Set(ctx, m.key, doc); err != nil {
		m.logger.Error("cannot save scene", log.String("key", m.key), log.Error(err))
		return err
	}

	m.report("scene saved",
		log.Int("entities", len(snapshot.Entities)),
		log.Uint64("fingerprint", xxhash.Sum64String(doc)),
	)
	return nil
}

// Load replaces the live scene with the persisted one and returns the number
// of entities restored. An absent or unreadable record restores an empty scene.
func (m *Manager) Load(ctx context.Context) (int, error) {
	snapshot := m.read(ctx)
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.entities.Clear()

	restored := 0
	for _, rec := range snapshot.Entities {
		if m.restore(rec) {
			restored++
		}
	}

	m.report("scene loaded", log.Int("entities", restored))
	return restored, nil
}

func (m *Manager) read(ctx context.Context) Snapshot {
	doc, err := m.store.Get(ctx, m.key)
	if errors.Is(err, storage.ErrNotFound) {
		return Snapshot{}
	}
	if err != nil {
		m.logger.Error("cannot read scene", log.String("key", m.key), log.Error(err))
		return Snapshot{}
	}

	snapshot, skipped, err := Decode(doc)
	if err != nil {
		m.logger.Error("scene document is malformed", log.String("key", m.key), log.Error(err))
		return Snapshot{}
	}
	for _, s := range skipped {
		m.logger.Error("skipping malformed entity record", log.Int("index", s.Index), log.Error(s.Err))
	}
	return snapshot
}

func (m *Manager) restore(rec EntityRecord) bool {
	var opts []entity.SpawnOption
	if rec.ID != "" {
		opts = append(opts, entity.WithID(rec.ID))
	}

	e, err := m.generator.GenerateAt(rec.Kind, rec.Position, opts...)
	if err != nil {
		m.logger.Error("cannot restore entity",
			log.String("entity", rec.ID),
			log.Stringer("kind", rec.Kind),
			log.Error(err),
		)
		return false
	}

	e.SetUniformScale(rec.Scale)

	e.Behaviours().Clear()
	for _, b := range rec.Behaviours {
		if !b.Kind.Valid() {
			m.logger.Error("behaviour kind not recognized, skipping",
				log.String("entity", e.ID()),
				log.String("behaviour", b.Name()),
			)
			continue
		}
		instance, err := m.behaviours.Create(b.Kind)
		if err != nil {
			continue
		}
		e.Behaviours().Add(instance)
	}
	return true
}

// Clear persists an empty scene. The live scene is left untouched.
func (m *Manager) Clear(ctx context.Context) error {
	doc, err := Snapshot{}.Encode()
	if err != nil {
		return err
	}
	if err = m.store.Set(ctx, m.key, doc); err != nil {
		m.logger.Error("cannot clear scene", log.String("key", m.key), log.Error(err))
		return err
	}

	m.report("scene cleared")
	return nil
}

// Print returns the raw persisted document.
func (m *Manager) Print(ctx context.Context) (string, error) {
	doc, err := m.store.Get(ctx, m.key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	m.report("scene document", log.String("document", doc))
	return doc, nil
}

func (m *Manager) report(msg string, fields ...log.Field) {
	if m.verbose {
		m.logger.Info(msg, fields...)
		return
	}
	m.logger.Debug(msg, fields...)
}

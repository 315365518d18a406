package state

import (
	"encoding/json"
	"fmt"

	"github.com/zeusync/sceneedit/internal/core/models"
)

// Snapshot is the persisted form of the scene.
type Snapshot struct {
	Entities []EntityRecord `json:"entities"`
}

type EntityRecord struct {
	ID         string            `json:"id"`
	Kind       models.EntityKind `json:"kind"`
	Position   models.Vector3    `json:"position"`
	Scale      float64           `json:"scale"`
	Behaviours []BehaviourRecord `json:"behaviours"`
}

type BehaviourRecord struct {
	Kind models.BehaviourKind `json:"kind"`

	// name is the stored kind as written, kept for reporting unknown kinds.
	name string
}

// UnmarshalJSON accepts unknown behaviour kinds so the owning entity record
// still decodes. They come back as models.BehaviourUnknown.
func (r *BehaviourRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	kind, err := models.ParseBehaviourKind(raw.Kind)
	if err != nil {
		kind = models.BehaviourUnknown
	}
	r.Kind = kind
	r.name = raw.Kind
	return nil
}

// Name returns the kind as it was stored.
func (r BehaviourRecord) Name() string {
	if r.name != "" {
		return r.name
	}
	return r.Kind.String()
}

// Encode renders the snapshot as a JSON document. Entities is never null in the output.
func (s Snapshot) Encode() (string, error) {
	if s.Entities == nil {
		s.Entities = []EntityRecord{}
	}
	for i := range s.Entities {
		if s.Entities[i].Behaviours == nil {
			s.Entities[i].Behaviours = []BehaviourRecord{}
		}
	}

	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

// RecordError describes one entity record that could not be decoded.
type RecordError struct {
	Index int
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("entity record %d: %v", e.Index, e.Err)
}

func (e RecordError) Unwrap() error { return e.Err }

// Decode parses doc record by record. A malformed document yields an empty
// snapshot and an error; malformed records are left out and reported
// individually.
func Decode(doc string) (Snapshot, []RecordError, error) {
	if doc == "" {
		return Snapshot{}, nil, nil
	}

	var raw struct {
		Entities []json.RawMessage `json:"entities"`
	}
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return Snapshot{}, nil, fmt.Errorf("decode snapshot: %w", err)
	}

	var (
		snapshot Snapshot
		skipped  []RecordError
	)
	for i, msg := range raw.Entities {
		var rec EntityRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			skipped = append(skipped, RecordError{Index: i, Err: err})
			continue
		}
		snapshot.Entities = append(snapshot.Entities, rec)
	}
	return snapshot, skipped, nil
}

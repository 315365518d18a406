package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownEntityKind    = errors.New("unknown entity kind")
	ErrUnknownBehaviourKind = errors.New("unknown behaviour kind")
)

// EntityKind identifies which entity configuration spawns an entity.
type EntityKind uint8

const (
	EntityUnknown EntityKind = iota
	EntityCube
	EntitySphere
)

var entityKindNames = map[EntityKind]string{
	EntityCube:   "cube",
	EntitySphere: "sphere",
}

// EntityKinds lists every valid entity kind in declaration order.
func EntityKinds() []EntityKind {
	return []EntityKind{EntityCube, EntitySphere}
}

func (k EntityKind) Valid() bool {
	_, ok := entityKindNames[k]
	return ok
}

func (k EntityKind) String() string {
	if name, ok := entityKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("entity(%d)", uint8(k))
}

func ParseEntityKind(s string) (EntityKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range entityKindNames {
		if name == s {
			return k, nil
		}
	}
	return EntityUnknown, fmt.Errorf("%w: %q", ErrUnknownEntityKind, s)
}

func (k EntityKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEntityKind, uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *EntityKind) UnmarshalText(text []byte) error {
	parsed, err := ParseEntityKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// BehaviourKind identifies a behaviour prototype. An entity holds at most one
// behaviour per kind.
type BehaviourKind uint8

const (
	BehaviourUnknown BehaviourKind = iota
	BehaviourExplode
	BehaviourPoints
)

var behaviourKindNames = map[BehaviourKind]string{
	BehaviourExplode: "explode",
	BehaviourPoints:  "points",
}

// BehaviourKinds lists every valid behaviour kind in declaration order.
func BehaviourKinds() []BehaviourKind {
	return []BehaviourKind{BehaviourExplode, BehaviourPoints}
}

func (k BehaviourKind) Valid() bool {
	_, ok := behaviourKindNames[k]
	return ok
}

func (k BehaviourKind) String() string {
	if name, ok := behaviourKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("behaviour(%d)", uint8(k))
}

func ParseBehaviourKind(s string) (BehaviourKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range behaviourKindNames {
		if name == s {
			return k, nil
		}
	}
	return BehaviourUnknown, fmt.Errorf("%w: %q", ErrUnknownBehaviourKind, s)
}

func (k BehaviourKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBehaviourKind, uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *BehaviourKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBehaviourKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

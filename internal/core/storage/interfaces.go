package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("key not found")
	ErrEmptyKey = errors.New("key is empty")
)

// KeyValue is a string-keyed store for serialized documents.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// Statistics describes the store usage since creation.
type Statistics struct {
	Keys    int
	Reads   uint64
	Writes  uint64
	Deletes uint64
}

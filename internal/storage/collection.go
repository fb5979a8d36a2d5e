package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const collectionEntity = "items"

// Collection stores one JSON list of T per user under {feature}:{user}:items.
type Collection[T any] struct {
	kv      KVStore
	feature string
}

func NewCollection[T any](kv KVStore, feature string) *Collection[T] {
	return &Collection[T]{kv: kv, feature: feature}
}

// List returns the user's items in insertion order; a missing list is empty.
func (c *Collection[T]) List(ctx context.Context, userID string) ([]T, error) {
	data, err := c.kv.Get(ctx, NewKey(c.feature, userID, collectionEntity))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []T{}, nil
		}
		return nil, err
	}

	items := []T{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("storage: decode %s list: %w", c.feature, err)
	}
	return items, nil
}

// Replace overwrites the user's list.
func (c *Collection[T]) Replace(ctx context.Context, userID string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("storage: encode %s list: %w", c.feature, err)
	}
	return c.kv.Set(ctx, NewKey(c.feature, userID, collectionEntity), data)
}

// Clear deletes the user's list.
func (c *Collection[T]) Clear(ctx context.Context, userID string) error {
	return c.kv.Delete(ctx, NewKey(c.feature, userID, collectionEntity))
}

// Document stores a single JSON value of T per user under {feature}:{user}:{entity}.
type Document[T any] struct {
	kv      KVStore
	feature string
	entity  string
}

func NewDocument[T any](kv KVStore, feature, entity string) *Document[T] {
	return &Document[T]{kv: kv, feature: feature, entity: entity}
}

// Get returns the stored value or ErrNotFound.
func (d *Document[T]) Get(ctx context.Context, userID string) (*T, error) {
	data, err := d.kv.Get(ctx, NewKey(d.feature, userID, d.entity))
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("storage: decode %s/%s: %w", d.feature, d.entity, err)
	}
	return &v, nil
}

func (d *Document[T]) Set(ctx context.Context, userID string, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s/%s: %w", d.feature, d.entity, err)
	}
	return d.kv.Set(ctx, NewKey(d.feature, userID, d.entity), data)
}

func (d *Document[T]) Delete(ctx context.Context, userID string) error {
	return d.kv.Delete(ctx, NewKey(d.feature, userID, d.entity))
}

// Package storage is the persistence adapter for per-user client state:
// the in-progress intake profile, goals, appointments and cached insights.
//
// Every entry lives under a namespaced key of the form
// {feature}:{userId}:{entity}.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by KVStore.Get when the key does not exist.
	ErrNotFound = errors.New("storage: key not found")

	// ErrProfileAbsent means no usable profile is stored: either none was
	// ever written or the stored value could not be decoded.
	ErrProfileAbsent = errors.New("storage: profile absent")

	ErrInvalidKey = errors.New("storage: invalid key")
)

// Features used as the first key segment.
const (
	FeatureIntake       = "intake"
	FeatureGoals        = "goals"
	FeatureAppointments = "appointments"
	FeatureInsights     = "insights"
	FeatureChat         = "chat"
)

// Key addresses one stored entity.
type Key struct {
	Feature string
	UserID  string
	Entity  string
}

// NewKey builds a Key.
func NewKey(feature, userID, entity string) Key {
	return Key{Feature: feature, UserID: userID, Entity: entity}
}

// String renders the key as feature:user:entity.
func (k Key) String() string {
	return k.Feature + ":" + k.UserID + ":" + k.Entity
}

// Validate rejects empty segments and segments containing the separator,
// which would let one user's key collide with another's.
func (k Key) Validate() error {
	for name, seg := range map[string]string{"feature": k.Feature, "user": k.UserID, "entity": k.Entity} {
		if seg == "" {
			return fmt.Errorf("%w: empty %s segment", ErrInvalidKey, name)
		}
		if strings.Contains(seg, ":") {
			return fmt.Errorf("%w: %s segment %q contains ':'", ErrInvalidKey, name, seg)
		}
	}
	return nil
}

// KVStore is the typed get/set/delete contract components depend on.
type KVStore interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, value []byte) error
	Delete(ctx context.Context, key Key) error
}

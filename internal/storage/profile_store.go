package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-health-companion/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// ProfileEntity is the fixed entity name the intake profile is stored under.
const ProfileEntity = "health_profile_data"

// ProfileStore persists the in-progress intake profile as plain JSON.
type ProfileStore struct {
	kv  KVStore
	log *logrus.Logger
}

func NewProfileStore(kv KVStore, log *logrus.Logger) *ProfileStore {
	return &ProfileStore{kv: kv, log: log}
}

// Save serializes profile and writes it synchronously. Write failures are
// returned to the caller.
func (s *ProfileStore) Save(ctx context.Context, userID string, profile *entity.Profile) error {
	if profile == nil {
		return errors.New("storage: nil profile")
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("storage: encode profile: %w", err)
	}
	return s.kv.Set(ctx, NewKey(FeatureIntake, userID, ProfileEntity), data)
}

// Load returns the stored profile. Missing and corrupt entries both yield
// ErrProfileAbsent; any other store failure is returned as is.
func (s *ProfileStore) Load(ctx context.Context, userID string) (*entity.Profile, error) {
	key := NewKey(FeatureIntake, userID, ProfileEntity)
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrProfileAbsent
		}
		return nil, err
	}

	profile := entity.NewProfile()
	if err := json.Unmarshal(data, profile); err != nil {
		s.log.Warnf("Discarding corrupt profile at %s: %+v", key, err)
		return nil, ErrProfileAbsent
	}
	profile.Normalize()
	return profile, nil
}

package storage

import (
	"context"
	"io"
	"testing"
	"time"

	"go-health-companion/internal/domain/entity"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "goals:user_1:items", NewKey(FeatureGoals, "user_1", "items").String())
}

func TestKeyValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     Key
		wantErr bool
	}{
		{name: "ok", key: NewKey("intake", "u1", "profile")},
		{name: "empty user", key: NewKey("intake", "", "profile"), wantErr: true},
		{name: "separator in user", key: NewKey("intake", "a:b", "profile"), wantErr: true},
		{name: "empty entity", key: NewKey("intake", "u1", ""), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.key.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRedisStore(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()
	key := NewKey(FeatureIntake, "user_1", "thing")

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, key, []byte("hello")))
	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
	assert.True(t, mr.Exists("intake:user_1:thing"))
	assert.Equal(t, time.Hour, mr.TTL("intake:user_1:thing"))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_RejectsInvalidKey(t *testing.T) {
	store, _ := newTestStore(t, 0)
	err := store.Set(context.Background(), NewKey(FeatureIntake, "", "x"), []byte("v"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestRedisStore_PropagatesTransportErrors(t *testing.T) {
	store, mr := newTestStore(t, 0)
	mr.Close()

	err := store.Set(context.Background(), NewKey(FeatureIntake, "u", "x"), []byte("v"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func sampleProfile() *entity.Profile {
	p := entity.NewProfile()
	p.PersonalDetails.Name = "Jane"
	p.PersonalDetails.Email = "j@x.com"
	p.PersonalDetails.Age = 41
	p.PersonalDetails.Address.City = "Lisbon"
	p.MedicalHistory.ChronicConditions = []string{"Asthma", "Migraine"}
	p.MedicalHistory.Allergies = []entity.Allergy{{Allergen: "Pollen", Reaction: "Sneezing"}}
	p.MedicalHistory.FamilyHistory.Mother = entity.FamilyCondition{Condition: "Diabetes", AgeOfDiagnosis: 50}
	return p
}

func TestProfileStore_RoundTrip(t *testing.T) {
	kv, _ := newTestStore(t, 0)
	store := NewProfileStore(kv, quietLogger())
	ctx := context.Background()

	for _, p := range []*entity.Profile{entity.NewProfile(), sampleProfile()} {
		require.NoError(t, store.Save(ctx, "user_1", p))
		got, err := store.Load(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestProfileStore_SaveIsIdempotent(t *testing.T) {
	kv, mr := newTestStore(t, 0)
	store := NewProfileStore(kv, quietLogger())
	ctx := context.Background()
	p := sampleProfile()

	require.NoError(t, store.Save(ctx, "user_1", p))
	first, err := mr.Get("intake:user_1:" + ProfileEntity)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "user_1", p))
	second, err := mr.Get("intake:user_1:" + ProfileEntity)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProfileStore_EmptyListsSerializeAsArrays(t *testing.T) {
	kv, mr := newTestStore(t, 0)
	store := NewProfileStore(kv, quietLogger())

	require.NoError(t, store.Save(context.Background(), "user_1", entity.NewProfile()))
	raw, err := mr.Get("intake:user_1:" + ProfileEntity)
	require.NoError(t, err)

	assert.Contains(t, raw, `"chronic_conditions":[]`)
	assert.NotContains(t, raw, "null")
}

func TestProfileStore_MissingAndCorruptAreAbsent(t *testing.T) {
	kv, mr := newTestStore(t, 0)
	store := NewProfileStore(kv, quietLogger())
	ctx := context.Background()

	_, err := store.Load(ctx, "nobody")
	assert.ErrorIs(t, err, ErrProfileAbsent)

	require.NoError(t, mr.Set("intake:user_2:"+ProfileEntity, "{not json"))
	_, err = store.Load(ctx, "user_2")
	assert.ErrorIs(t, err, ErrProfileAbsent)
}

func TestProfileStore_ReadFailureIsDistinct(t *testing.T) {
	kv, mr := newTestStore(t, 0)
	store := NewProfileStore(kv, quietLogger())
	mr.Close()

	_, err := store.Load(context.Background(), "user_1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProfileAbsent)
}

func TestProfileStore_LoadFillsMissingLists(t *testing.T) {
	kv, mr := newTestStore(t, 0)
	store := NewProfileStore(kv, quietLogger())
	require.NoError(t, mr.Set("intake:user_1:"+ProfileEntity, `{"personal_details":{"name":"Jane"}}`))

	got, err := store.Load(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.PersonalDetails.Name)
	assert.NotNil(t, got.MedicalHistory.Allergies)
	assert.Empty(t, got.MedicalHistory.Allergies)
}

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestCollection(t *testing.T) {
	kv, mr := newTestStore(t, 0)
	coll := NewCollection[item](kv, FeatureGoals)
	ctx := context.Background()

	items, err := coll.List(ctx, "user_1")
	require.NoError(t, err)
	assert.Empty(t, items)

	want := []item{{ID: "1", Name: "walk"}, {ID: "2", Name: "sleep"}}
	require.NoError(t, coll.Replace(ctx, "user_1", want))
	assert.True(t, mr.Exists("goals:user_1:items"))

	items, err = coll.List(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, want, items)

	other, err := coll.List(ctx, "user_2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, coll.Clear(ctx, "user_1"))
	items, err = coll.List(ctx, "user_1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDocument(t *testing.T) {
	kv, _ := newTestStore(t, 0)
	doc := NewDocument[item](kv, FeatureInsights, "health_plan")
	ctx := context.Background()

	_, err := doc.Get(ctx, "user_1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, doc.Set(ctx, "user_1", &item{ID: "x", Name: "plan"}))
	got, err := doc.Get(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "plan", got.Name)

	require.NoError(t, doc.Delete(ctx, "user_1"))
	_, err = doc.Get(ctx, "user_1")
	assert.ErrorIs(t, err, ErrNotFound)
}

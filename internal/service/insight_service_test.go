package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-health-companion/internal/intake"
	"go-health-companion/internal/storage"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

func newKV(t *testing.T) storage.KVStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return storage.NewRedisStore(client, 0)
}

func TestParseHealthPlan(t *testing.T) {
	text := "Sure! Here is the plan:\n```json\n" + `{"health_plan": {
		"13:00": "Lunch with vegetables",
		"07:00": "Take medication with water",
		"18:30": "Evening walk",
		"22:00": "Sleep",
		"09:00": "Check blood sugar"
	}}` + "\n```"

	items, err := ParseHealthPlan(text)
	require.NoError(t, err)

	want := []PlanItem{
		{Time: "07:00", Activity: "Take medication with water", Category: PlanMedication},
		{Time: "09:00", Activity: "Check blood sugar", Category: PlanCheckup},
		{Time: "13:00", Activity: "Lunch with vegetables", Category: PlanMeal},
		{Time: "18:30", Activity: "Evening walk", Category: PlanExercise},
		{Time: "22:00", Activity: "Sleep", Category: PlanRest},
	}
	assert.Equal(t, want, items)
}

func TestParseHealthPlan_Errors(t *testing.T) {
	for _, text := range []string{"no json here", `{"health_plan": {}}`, `{"health_plan": [1,2]}`} {
		_, err := ParseHealthPlan(text)
		assert.ErrorIs(t, err, ErrInsightParse, text)
	}
}

func TestProfileSummary(t *testing.T) {
	s := ProfileSummary(intake.DemoProfile(0), "I work 9-5")
	assert.Contains(t, s, "I am 32 years old")
	assert.Contains(t, s, "Diabetes Type 2")
	assert.Contains(t, s, "Metformin 500mg")
	assert.Contains(t, s, "I work 9-5")
}

func TestInsightService_GeneratesAndCaches(t *testing.T) {
	gen := &fakeGenerator{text: `{"health_plan": {"08:00": "Breakfast"}}`}
	svc := NewInsightService(gen, newKV(t), quietLogger())
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	plan, err := svc.HealthPlan(ctx, "user_1", intake.DemoProfile(0), "", false)
	require.NoError(t, err)
	assert.Equal(t, []PlanItem{{Time: "08:00", Activity: "Breakfast", Category: PlanMeal}}, plan.Items)

	again, err := svc.HealthPlan(ctx, "user_1", intake.DemoProfile(0), "", false)
	require.NoError(t, err)
	assert.Equal(t, plan.Items, again.Items)
	assert.Len(t, gen.prompts, 1, "second call served from cache")

	_, err = svc.HealthPlan(ctx, "user_1", intake.DemoProfile(0), "", true)
	require.NoError(t, err)
	assert.Len(t, gen.prompts, 2)
}

func TestInsightService_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewInsightService(nil, newKV(t), quietLogger()).HealthPlan(ctx, "user_1", nil, "", false)
	assert.ErrorIs(t, err, ErrInsightUnavailable)

	boom := errors.New("quota exceeded")
	_, err = NewInsightService(&fakeGenerator{err: boom}, newKV(t), quietLogger()).HealthPlan(ctx, "user_1", nil, "", false)
	assert.ErrorIs(t, err, boom)
}

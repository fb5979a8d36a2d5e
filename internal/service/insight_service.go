package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/storage"

	"github.com/sirupsen/logrus"
)

var (
	ErrInsightUnavailable = errors.New("insight generator is not configured")
	ErrInsightParse       = errors.New("failed to parse insight response")
)

// PlanCategory classifies a health plan activity.
type PlanCategory string

const (
	PlanMedication PlanCategory = "medication"
	PlanExercise   PlanCategory = "exercise"
	PlanMeal       PlanCategory = "meal"
	PlanCheckup    PlanCategory = "checkup"
	PlanRest       PlanCategory = "rest"
)

type PlanItem struct {
	Time     string       `json:"time"`
	Activity string       `json:"activity"`
	Category PlanCategory `json:"category"`
}

// HealthPlan is a daily timeline generated from the user's profile.
type HealthPlan struct {
	Items       []PlanItem `json:"items"`
	Summary     string     `json:"summary"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// InsightService generates and caches AI health plans.
type InsightService struct {
	gen   TextGenerator
	cache *storage.Document[HealthPlan]
	log   *logrus.Logger
	now   func() time.Time
}

// NewInsightService accepts a nil generator; HealthPlan then serves cached
// plans only.
func NewInsightService(gen TextGenerator, kv storage.KVStore, log *logrus.Logger) *InsightService {
	return &InsightService{
		gen:   gen,
		cache: storage.NewDocument[HealthPlan](kv, storage.FeatureInsights, "health_plan"),
		log:   log,
		now:   time.Now,
	}
}

// HealthPlan returns the cached plan unless refresh is set, otherwise asks
// the generator for a new one and caches it.
func (s *InsightService) HealthPlan(ctx context.Context, userID string, profile *entity.Profile, note string, refresh bool) (*HealthPlan, error) {
	if !refresh {
		cached, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warnf("Failed to read cached health plan for %s: %+v", userID, err)
		}
	}

	if s.gen == nil {
		return nil, ErrInsightUnavailable
	}

	summary := ProfileSummary(profile, note)
	text, err := s.gen.Generate(ctx, healthPlanPrompt(summary))
	if err != nil {
		s.log.Warnf("Failed to generate health plan for %s: %+v", userID, err)
		return nil, err
	}

	items, err := ParseHealthPlan(text)
	if err != nil {
		s.log.Warnf("Unparseable health plan for %s: %q", userID, text)
		return nil, err
	}

	plan := &HealthPlan{Items: items, Summary: summary, GeneratedAt: s.now()}
	if err := s.cache.Set(ctx, userID, plan); err != nil {
		s.log.Warnf("Failed to cache health plan for %s: %+v", userID, err)
	}
	return plan, nil
}

// ProfileSummary condenses the profile into the free-text description the
// prompt is built from.
func ProfileSummary(p *entity.Profile, note string) string {
	var parts []string
	if p != nil {
		pd := p.PersonalDetails
		mh := p.MedicalHistory
		if pd.Age > 0 {
			parts = append(parts, fmt.Sprintf("I am %d years old", pd.Age))
		}
		if pd.Gender != "" {
			parts = append(parts, "gender "+strings.ToLower(pd.Gender))
		}
		if len(mh.ChronicConditions) > 0 {
			parts = append(parts, "I have "+strings.Join(mh.ChronicConditions, ", "))
		}
		if len(mh.Medications) > 0 {
			meds := make([]string, 0, len(mh.Medications))
			for _, m := range mh.Medications {
				meds = append(meds, fmt.Sprintf("%s %s %s", m.Name, m.Dosage, strings.ToLower(m.Frequency)))
			}
			parts = append(parts, "I take "+strings.Join(meds, "; "))
		}
		if len(mh.Allergies) > 0 {
			allergens := make([]string, 0, len(mh.Allergies))
			for _, a := range mh.Allergies {
				allergens = append(allergens, a.Allergen)
			}
			parts = append(parts, "I am allergic to "+strings.Join(allergens, ", "))
		}
		ls := mh.Lifestyle
		if ls.ExerciseFrequency != "" {
			parts = append(parts, "I exercise "+strings.ToLower(ls.ExerciseFrequency))
		}
		if ls.Diet != "" {
			parts = append(parts, "my diet is "+strings.ToLower(ls.Diet))
		}
	}
	if strings.TrimSpace(note) != "" {
		parts = append(parts, strings.TrimSpace(note))
	}
	return strings.Join(parts, ". ")
}

func healthPlanPrompt(summary string) string {
	return `You are a health planning assistant. Build a one-day schedule for this person:

` + summary + `

Format your response as a JSON object with the following structure:
{
  "health_plan": {
    "07:00": "Activity description",
    "08:00": "Activity description"
  }
}

Use 24-hour HH:MM times as keys. Only respond with the JSON object, no additional text.`
}

// ParseHealthPlan extracts the JSON object embedded in text and returns its
// activities ordered by hour.
func ParseHealthPlan(text string) ([]PlanItem, error) {
	var body struct {
		HealthPlan map[string]string `json:"health_plan"`
	}
	if err := decodeEmbeddedJSON(text, &body); err != nil {
		return nil, err
	}
	if len(body.HealthPlan) == 0 {
		return nil, fmt.Errorf("%w: empty health_plan", ErrInsightParse)
	}

	items := make([]PlanItem, 0, len(body.HealthPlan))
	for t, activity := range body.HealthPlan {
		items = append(items, PlanItem{Time: t, Activity: activity, Category: categorize(activity)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		hi, hj := hourOf(items[i].Time), hourOf(items[j].Time)
		if hi != hj {
			return hi < hj
		}
		return items[i].Time < items[j].Time
	})
	return items, nil
}

// decodeEmbeddedJSON decodes the outermost {...} span of a model answer,
// which often wraps the object in prose or code fences.
func decodeEmbeddedJSON(text string, v any) error {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("%w: no JSON object found", ErrInsightParse)
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInsightParse, err)
	}
	return nil
}

func hourOf(t string) int {
	h, _, _ := strings.Cut(t, ":")
	n, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0
	}
	return n
}

func categorize(activity string) PlanCategory {
	a := strings.ToLower(activity)
	switch {
	case strings.Contains(a, "medication") || strings.Contains(a, "insulin"):
		return PlanMedication
	case strings.Contains(a, "exercise") || strings.Contains(a, "walk"):
		return PlanExercise
	case strings.Contains(a, "breakfast") || strings.Contains(a, "lunch") ||
		strings.Contains(a, "dinner") || strings.Contains(a, "snack"):
		return PlanMeal
	case strings.Contains(a, "sleep"):
		return PlanRest
	}
	return PlanCheckup
}

package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-health-companion/internal/converter"
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/observability/metrics"
	"go-health-companion/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrGoalNotFound        = errors.New("goal not found")
	ErrInvalidGoalCategory = errors.New("invalid goal category")
	ErrInvalidTargetDate   = errors.New("invalid target date, use YYYY-MM-DD")
)

type GoalUsecase interface {
	CreateGoal(ctx context.Context, req *dto.CreateGoalRequest) (*dto.GoalResponse, error)
	GetAllGoals(ctx context.Context) (*dto.GoalListResponse, error)
	UpdateGoalStatus(ctx context.Context, id string, req *dto.UpdateGoalStatusRequest) (*dto.GoalResponse, error)
	DeleteGoal(ctx context.Context, id string) error
	GetSuggestions(ctx context.Context, category string) (*dto.GoalSuggestionsResponse, error)
}

type goalUsecase struct {
	log     *logrus.Logger
	goals   *storage.Collection[entity.Goal]
	metrics *metrics.IntakeMetrics
	now     func() time.Time

	// serializes read-modify-write of the stored lists
	mu sync.Mutex
}

func NewGoalUsecase(log *logrus.Logger, kv storage.KVStore, intakeMetrics *metrics.IntakeMetrics) GoalUsecase {
	return &goalUsecase{
		log:     log,
		goals:   storage.NewCollection[entity.Goal](kv, storage.FeatureGoals),
		metrics: intakeMetrics,
		now:     time.Now,
	}
}

func (u *goalUsecase) CreateGoal(ctx context.Context, req *dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	category := entity.GoalCategory(req.Category)
	if !entity.ValidGoalCategory(category) {
		return nil, ErrInvalidGoalCategory
	}

	goal := entity.Goal{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.GoalStatusPending,
		Category:    category,
		CreatedAt:   u.now().UTC(),
	}
	if req.TargetDate != "" {
		target, err := time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			return nil, ErrInvalidTargetDate
		}
		goal.TargetDate = &target
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	goals, err := u.goals.List(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load goals: %+v", err)
		return nil, err
	}

	goals = append(goals, goal)
	if err := u.goals.Replace(ctx, userID, goals); err != nil {
		u.metrics.ObservePersistError(storage.FeatureGoals)
		u.log.Warnf("Failed to save goals: %+v", err)
		return nil, err
	}

	return converter.GoalToResponse(&goal), nil
}

func (u *goalUsecase) GetAllGoals(ctx context.Context) (*dto.GoalListResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	goals, err := u.goals.List(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load goals: %+v", err)
		return nil, err
	}

	return &dto.GoalListResponse{
		Goals: converter.GoalsToResponses(goals),
		Total: len(goals),
	}, nil
}

func (u *goalUsecase) UpdateGoalStatus(ctx context.Context, id string, req *dto.UpdateGoalStatusRequest) (*dto.GoalResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	goals, err := u.goals.List(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load goals: %+v", err)
		return nil, err
	}

	idx := indexOfGoal(goals, id)
	if idx < 0 {
		return nil, ErrGoalNotFound
	}
	goals[idx].Status = entity.GoalStatus(req.Status)

	if err := u.goals.Replace(ctx, userID, goals); err != nil {
		u.metrics.ObservePersistError(storage.FeatureGoals)
		u.log.Warnf("Failed to save goals: %+v", err)
		return nil, err
	}

	return converter.GoalToResponse(&goals[idx]), nil
}

func (u *goalUsecase) DeleteGoal(ctx context.Context, id string) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	goals, err := u.goals.List(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load goals: %+v", err)
		return err
	}

	idx := indexOfGoal(goals, id)
	if idx < 0 {
		return ErrGoalNotFound
	}
	goals = append(goals[:idx], goals[idx+1:]...)

	if err := u.goals.Replace(ctx, userID, goals); err != nil {
		u.metrics.ObservePersistError(storage.FeatureGoals)
		u.log.Warnf("Failed to save goals: %+v", err)
		return err
	}
	return nil
}

// GetSuggestions returns the canned goal titles for a category; an empty
// category means fitness.
func (u *goalUsecase) GetSuggestions(ctx context.Context, category string) (*dto.GoalSuggestionsResponse, error) {
	c := entity.GoalCategory(category)
	if c == "" {
		c = entity.GoalCategoryFitness
	}
	suggestions, ok := entity.GoalSuggestions[c]
	if !ok {
		return nil, ErrInvalidGoalCategory
	}

	return &dto.GoalSuggestionsResponse{
		Category:    string(c),
		Suggestions: append([]string(nil), suggestions...),
	}, nil
}

func indexOfGoal(goals []entity.Goal, id string) int {
	for i := range goals {
		if goals[i].ID == id {
			return i
		}
	}
	return -1
}

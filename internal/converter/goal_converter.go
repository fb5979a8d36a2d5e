package converter

import (
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/domain/entity"
)

// GoalToResponse converts a Goal entity to GoalResponse DTO
func GoalToResponse(goal *entity.Goal) *dto.GoalResponse {
	if goal == nil {
		return nil
	}

	return &dto.GoalResponse{
		ID:          goal.ID,
		Title:       goal.Title,
		Description: goal.Description,
		Status:      string(goal.Status),
		Category:    string(goal.Category),
		CreatedAt:   goal.CreatedAt,
		TargetDate:  goal.TargetDate,
	}
}

func GoalsToResponses(goals []entity.Goal) []dto.GoalResponse {
	responses := make([]dto.GoalResponse, len(goals))
	for i := range goals {
		responses[i] = *GoalToResponse(&goals[i])
	}
	return responses
}

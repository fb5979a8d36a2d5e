package dto

import "time"

// Request DTOs

type CreateGoalRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"required,oneof=fitness nutrition mental sleep other"`
	TargetDate  string `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateGoalStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}

// Response DTOs

type GoalResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"created_at"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
}

type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
	Total int            `json:"total"`
}

type GoalSuggestionsResponse struct {
	Category    string   `json:"category"`
	Suggestions []string `json:"suggestions"`
}

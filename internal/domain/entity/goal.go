package entity

import "time"

// GoalStatus represents the progress of a wellness goal
type GoalStatus string

const (
	GoalStatusPending    GoalStatus = "pending"
	GoalStatusInProgress GoalStatus = "in-progress"
	GoalStatusCompleted  GoalStatus = "completed"
)

// GoalCategory groups goals and their suggestions
type GoalCategory string

const (
	GoalCategoryFitness   GoalCategory = "fitness"
	GoalCategoryNutrition GoalCategory = "nutrition"
	GoalCategoryMental    GoalCategory = "mental"
	GoalCategorySleep     GoalCategory = "sleep"
	GoalCategoryOther     GoalCategory = "other"
)

// Goal is a user's wellness goal
type Goal struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      GoalStatus   `json:"status"`
	Category    GoalCategory `json:"category"`
	CreatedAt   time.Time    `json:"created_at"`
	TargetDate  *time.Time   `json:"target_date,omitempty"`
}

// IsCompleted checks if goal is completed
func (g *Goal) IsCompleted() bool {
	return g.Status == GoalStatusCompleted
}

// ValidGoalStatus reports whether s is a known status.
func ValidGoalStatus(s GoalStatus) bool {
	switch s {
	case GoalStatusPending, GoalStatusInProgress, GoalStatusCompleted:
		return true
	}
	return false
}

// ValidGoalCategory reports whether c is a known category.
func ValidGoalCategory(c GoalCategory) bool {
	switch c {
	case GoalCategoryFitness, GoalCategoryNutrition, GoalCategoryMental, GoalCategorySleep, GoalCategoryOther:
		return true
	}
	return false
}

// GoalSuggestions are the canned goal titles offered per category.
var GoalSuggestions = map[GoalCategory][]string{
	GoalCategoryFitness: {
		"Walk 10,000 steps daily",
		"Exercise 3 times a week",
		"Complete a 5K run",
		"Do 20 pushups daily",
		"Practice yoga for 15 minutes daily",
	},
	GoalCategoryNutrition: {
		"Drink 8 glasses of water daily",
		"Eat 5 servings of vegetables",
		"Reduce sugar intake",
		"Meal prep weekly",
		"Include protein in every meal",
	},
	GoalCategoryMental: {
		"Meditate for 10 minutes daily",
		"Practice gratitude journaling",
		"Read for 30 minutes daily",
		"Take regular breaks from screens",
		"Practice deep breathing exercises",
	},
	GoalCategorySleep: {
		"Sleep 8 hours every night",
		"Maintain consistent sleep schedule",
		"No screens 1 hour before bed",
		"Create a bedtime routine",
		"Make bedroom sleep-friendly",
	},
	GoalCategoryOther: {
		"Schedule regular health check-ups",
		"Take medications on time",
		"Monitor blood pressure weekly",
		"Practice good posture",
		"Stay up to date with vaccinations",
	},
}

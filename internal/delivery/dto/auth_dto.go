package dto

type MeResponse struct {
	UserID            string `json:"user_id"`
	Email             string `json:"email,omitempty"`
	CurrentStep       int    `json:"current_step"`
	CompletionPercent int    `json:"completion_percent"`
	IntakeCompleted   bool   `json:"intake_completed"`
}

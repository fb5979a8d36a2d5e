package dto

type GoalCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

type AppointmentCounts struct {
	Scheduled int `json:"scheduled"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

type DashboardResponse struct {
	CompletionPercent    int                   `json:"completion_percent"`
	CurrentStep          int                   `json:"current_step"`
	IntakeCompleted      bool                  `json:"intake_completed"`
	Goals                GoalCounts            `json:"goals"`
	Appointments         AppointmentCounts     `json:"appointments"`
	UpcomingAppointments []AppointmentResponse `json:"upcoming_appointments"`
	Documents            int64                 `json:"documents"`
}

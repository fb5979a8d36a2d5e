package dto

// Request DTOs

type CreateAppointmentRequest struct {
	PatientName string `json:"patient_name" validate:"required,max=200"`
	DoctorName  string `json:"doctor_name" validate:"required,max=200"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	Type        string `json:"type" validate:"required,max=100"`
	Notes       string `json:"notes" validate:"max=2000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          string `json:"id"`
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

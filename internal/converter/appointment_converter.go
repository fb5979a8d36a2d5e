package converter

import (
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          a.ID,
		PatientName: a.PatientName,
		DoctorName:  a.DoctorName,
		Date:        a.Date,
		Time:        a.Time,
		Type:        a.Type,
		Status:      string(a.Status),
		Notes:       a.Notes,
	}
}

func AppointmentsToResponses(list []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(list))
	for i := range list {
		responses[i] = *AppointmentToResponse(&list[i])
	}
	return responses
}

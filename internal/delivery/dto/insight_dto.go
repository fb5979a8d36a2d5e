package dto

type HealthPlanRequest struct {
	Note    string `json:"note" validate:"max=2000"`
	Refresh bool   `json:"refresh"`
}

// AnalyzeMedicineRequest carries a photo as a data URL, e.g.
// "data:image/jpeg;base64,...".
type AnalyzeMedicineRequest struct {
	Image string `json:"image" validate:"required,startswith=data:image/"`
}

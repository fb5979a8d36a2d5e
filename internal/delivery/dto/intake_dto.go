package dto

import (
	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/intake"
)

// Update message types accepted by POST /intake/updates.
const (
	UpdateTypeSetField   = "set_field"
	UpdateTypeAppendItem = "append_item"
	UpdateTypeUpdateItem = "update_item"
	UpdateTypeRemoveItem = "remove_item"
)

// Request DTOs

type IntakeUpdateRequest struct {
	Type  string            `json:"type" validate:"required,oneof=set_field append_item update_item remove_item"`
	Path  string            `json:"path" validate:"required_if=Type set_field"`
	Value string            `json:"value"`
	List  string            `json:"list" validate:"required_unless=Type set_field"`
	Index int               `json:"index" validate:"gte=0"`
	Field string            `json:"field" validate:"required_if=Type update_item"`
	Item  map[string]string `json:"item" validate:"required_if=Type append_item"`
}

type LoadDemoRequest struct {
	Index int `json:"index" validate:"gte=0"`
}

// Response DTOs

type IntakeStateResponse struct {
	Profile           *entity.Profile        `json:"profile"`
	CurrentStep       intake.Step            `json:"current_step"`
	CurrentStepLabel  string                 `json:"current_step_label"`
	Validity          [intake.StepCount]bool `json:"validity"`
	Progress          []intake.StepIndicator `json:"progress"`
	CompletionPercent int                    `json:"completion_percent"`
	Completed         bool                   `json:"completed"`
	Saving            bool                   `json:"saving"`
}

type StepMoveResponse struct {
	Moved bool                 `json:"moved"`
	State *IntakeStateResponse `json:"state"`
}

type CompleteIntakeResponse struct {
	Outcome intake.SaveOutcome   `json:"outcome"`
	State   *IntakeStateResponse `json:"state"`
}

type IntakeFieldsResponse struct {
	Forms []intake.Form `json:"forms"`
}

type DemoProfilesResponse struct {
	Count int `json:"count"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	ContentType string
	Filename    string
	Data        []byte
}

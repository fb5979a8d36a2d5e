package converter

import (
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/intake"
)

// IntakeStateToResponse converts a controller snapshot to IntakeStateResponse DTO
func IntakeStateToResponse(state intake.State) *dto.IntakeStateResponse {
	return &dto.IntakeStateResponse{
		Profile:           state.Profile,
		CurrentStep:       state.CurrentStep,
		CurrentStepLabel:  state.CurrentStep.Label(),
		Validity:          state.Validity,
		Progress:          state.Progress,
		CompletionPercent: CompletionPercent(state.Validity),
		Completed:         state.Completed,
		Saving:            state.Saving,
	}
}

// CompletionPercent is the share of steps whose validator passes.
func CompletionPercent(validity [intake.StepCount]bool) int {
	valid := 0
	for _, ok := range validity {
		if ok {
			valid++
		}
	}
	return valid * 100 / intake.StepCount
}

// IntakeUpdateToMessage maps an update request onto the reducer's message
// types. It returns nil for an unknown type.
func IntakeUpdateToMessage(req *dto.IntakeUpdateRequest) intake.Message {
	switch req.Type {
	case dto.UpdateTypeSetField:
		return intake.SetField{Path: req.Path, Value: req.Value}
	case dto.UpdateTypeAppendItem:
		return intake.AppendItem{List: req.List, Item: req.Item}
	case dto.UpdateTypeUpdateItem:
		return intake.UpdateItem{List: req.List, Index: req.Index, Field: req.Field, Value: req.Value}
	case dto.UpdateTypeRemoveItem:
		return intake.RemoveItem{List: req.List, Index: req.Index}
	}
	return nil
}

package intake

// StepStatus is how the progress indicator renders a step.
type StepStatus string

const (
	// StepStatusCompleted: validator passes and the step is behind the current one.
	StepStatusCompleted StepStatus = "completed"
	StepStatusCurrent   StepStatus = "current"
	// StepStatusVisited: behind the current step but no longer valid. Still clickable.
	StepStatusVisited StepStatus = "visited"
	// StepStatusAvailable: ahead of the current step and already valid.
	StepStatusAvailable StepStatus = "available"
	StepStatusLocked    StepStatus = "locked"
)

// StepIndicator is one rendered entry of the progress indicator.
type StepIndicator struct {
	Step      Step       `json:"step"`
	Label     string     `json:"label"`
	Status    StepStatus `json:"status"`
	Valid     bool       `json:"valid"`
	Clickable bool       `json:"clickable"`
}

// Progress renders the indicator for the given current step and per-step
// validity. Clickable mirrors the GoToStep rule: behind or at the current
// step, or valid.
func Progress(current Step, validity [StepCount]bool) []StepIndicator {
	out := make([]StepIndicator, 0, StepCount)
	for _, s := range Steps() {
		ind := StepIndicator{Step: s, Label: s.Label(), Valid: validity[s]}

		switch {
		case s == current:
			ind.Status = StepStatusCurrent
		case s < current && validity[s]:
			ind.Status = StepStatusCompleted
		case s < current:
			ind.Status = StepStatusVisited
		case validity[s]:
			ind.Status = StepStatusAvailable
		default:
			ind.Status = StepStatusLocked
		}
		ind.Clickable = ind.Status != StepStatusLocked

		out = append(out, ind)
	}
	return out
}

package intake

// SaveStatus is the result of submitting a completed profile.
type SaveStatus string

const (
	SaveSucceeded SaveStatus = "succeeded"
	SaveFailed    SaveStatus = "failed"
)

// SaveOutcome is either a success or a failure with a reason. Callers must
// branch on it; a failed save is never reported as success.
type SaveOutcome struct {
	Status SaveStatus `json:"status"`
	Reason string     `json:"reason,omitempty"`
}

func Succeeded() SaveOutcome {
	return SaveOutcome{Status: SaveSucceeded}
}

func Failed(reason string) SaveOutcome {
	return SaveOutcome{Status: SaveFailed, Reason: reason}
}

func (o SaveOutcome) Succeeded() bool {
	return o.Status == SaveSucceeded
}

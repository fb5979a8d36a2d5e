package intake

// Step is the index of one intake screen.
type Step int

const (
	StepPersonalDetails Step = iota
	StepMedicalHistory
	StepInsurance
	StepLifestyle
	StepFamilyHistory
)

// StepCount is the number of intake screens; valid steps are [0, StepCount).
const StepCount = 5

// LastStep is the only step from which the intake can be completed.
const LastStep = StepFamilyHistory

var stepLabels = [StepCount]string{
	"Personal Details",
	"Medical History",
	"Insurance",
	"Lifestyle",
	"Family History",
}

// Valid reports whether s is within [0, StepCount).
func (s Step) Valid() bool {
	return s >= 0 && s < StepCount
}

// Label is the human readable title of the step.
func (s Step) Label() string {
	if !s.Valid() {
		return ""
	}
	return stepLabels[s]
}

// Steps returns every step in order.
func Steps() []Step {
	out := make([]Step, StepCount)
	for i := range out {
		out[i] = Step(i)
	}
	return out
}

package intake

import "go-health-companion/internal/domain/entity"

// Validator decides whether a step's required fields are complete.
// Validators are pure and must accept a nil profile.
type Validator func(p *entity.Profile) bool

// validators is the single source of completeness rules. The step gate,
// the progress indicator and ResumePoint all read from it.
var validators = [StepCount]Validator{
	StepPersonalDetails: personalDetailsComplete,
	StepMedicalHistory:  medicalHistoryComplete,
	StepInsurance:       insuranceComplete,
	StepLifestyle:       lifestyleComplete,
	StepFamilyHistory:   familyHistoryComplete,
}

func personalDetailsComplete(p *entity.Profile) bool {
	if p == nil {
		return false
	}
	return p.PersonalDetails.Name != "" && p.PersonalDetails.Email != ""
}

// Surgeries, vaccinations and recent visits are optional.
func medicalHistoryComplete(p *entity.Profile) bool {
	if p == nil {
		return false
	}
	m := p.MedicalHistory
	return len(m.ChronicConditions) > 0 && len(m.Allergies) > 0 && len(m.Medications) > 0
}

func insuranceComplete(p *entity.Profile) bool {
	if p == nil {
		return false
	}
	in := p.MedicalHistory.Insurance
	return in.Provider != "" && in.PolicyNumber != "" && in.Coverage != "" && in.ValidUntil != ""
}

func lifestyleComplete(p *entity.Profile) bool {
	if p == nil {
		return false
	}
	l := p.MedicalHistory.Lifestyle
	return l.Smoking != "" && l.AlcoholConsumption != "" && l.ExerciseFrequency != "" && l.Diet != ""
}

func familyHistoryComplete(p *entity.Profile) bool {
	if p == nil {
		return false
	}
	f := p.MedicalHistory.FamilyHistory
	return parentComplete(f.Father) && parentComplete(f.Mother)
}

func parentComplete(c entity.FamilyCondition) bool {
	return c.Condition != "" && c.AgeOfDiagnosis > 0
}

// IsStepValid evaluates the validator of step s. Out of range steps are never valid.
func IsStepValid(p *entity.Profile, s Step) bool {
	if !s.Valid() {
		return false
	}
	return validators[s](p)
}

// Validity evaluates every validator against p.
func Validity(p *entity.Profile) [StepCount]bool {
	var out [StepCount]bool
	for i, v := range validators {
		out[i] = v(p)
	}
	return out
}

// ResumePoint returns the first step whose validator fails, scanning in
// order and never skipping a failing step. A fully valid profile resumes on
// the last step.
func ResumePoint(p *entity.Profile) Step {
	for i, v := range validators {
		if !v(p) {
			return Step(i)
		}
	}
	return LastStep
}

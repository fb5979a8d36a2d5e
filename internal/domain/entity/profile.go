package entity

// Profile is the complete health-intake aggregate collected by the intake flow.
// Its JSON form is the durable representation used by every store.
type Profile struct {
	PersonalDetails PersonalDetails `json:"personal_details"`
	MedicalHistory  MedicalHistory  `json:"medical_history"`
}

type PersonalDetails struct {
	Name             string           `json:"name"`
	Age              int              `json:"age"`
	Gender           string           `json:"gender"`
	DateOfBirth      string           `json:"date_of_birth"`
	BloodType        string           `json:"blood_type"`
	ContactNumber    string           `json:"contact_number"`
	Email            string           `json:"email"`
	Address          Address          `json:"address"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type EmergencyContact struct {
	Name          string `json:"name"`
	Relationship  string `json:"relationship"`
	ContactNumber string `json:"contact_number"`
}

type MedicalHistory struct {
	ChronicConditions []string      `json:"chronic_conditions"`
	Allergies         []Allergy     `json:"allergies"`
	Medications       []Medication  `json:"medications"`
	Surgeries         []Surgery     `json:"surgeries"`
	Vaccinations      []Vaccination `json:"vaccinations"`
	RecentVisits      []RecentVisit `json:"recent_visits"`
	FamilyHistory     FamilyHistory `json:"family_history"`
	Lifestyle         Lifestyle     `json:"lifestyle"`
	Insurance         Insurance     `json:"insurance_details"`
}

type Allergy struct {
	Allergen string `json:"allergen"`
	Reaction string `json:"reaction"`
}

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

type Surgery struct {
	Procedure string `json:"procedure"`
	Date      string `json:"date"`
	Hospital  string `json:"hospital"`
}

type Vaccination struct {
	Vaccine string `json:"vaccine"`
	Date    string `json:"date"`
	Dose    string `json:"dose"`
}

type RecentVisit struct {
	Date   string `json:"date"`
	Doctor string `json:"doctor"`
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// FamilyCondition records one parent's condition and the age it was diagnosed at.
type FamilyCondition struct {
	Condition      string `json:"condition"`
	AgeOfDiagnosis int    `json:"age_of_diagnosis"`
}

type FamilyHistory struct {
	Father FamilyCondition `json:"father"`
	Mother FamilyCondition `json:"mother"`
}

type Lifestyle struct {
	Smoking            string `json:"smoking"`
	AlcoholConsumption string `json:"alcohol_consumption"`
	ExerciseFrequency  string `json:"exercise_frequency"`
	Diet               string `json:"diet"`
}

type Insurance struct {
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policy_number"`
	Coverage     string `json:"coverage"`
	ValidUntil   string `json:"valid_until"`
}

// Top-level section names of a Profile, as used in its JSON form.
const (
	SectionPersonalDetails = "personal_details"
	SectionMedicalHistory  = "medical_history"
)

// NewProfile returns an empty profile: blank strings, zero numbers and empty
// (non-nil) lists, so it serializes with [] rather than null.
func NewProfile() *Profile {
	return &Profile{
		MedicalHistory: MedicalHistory{
			ChronicConditions: []string{},
			Allergies:         []Allergy{},
			Medications:       []Medication{},
			Surgeries:         []Surgery{},
			Vaccinations:      []Vaccination{},
			RecentVisits:      []RecentVisit{},
		},
	}
}

// Normalize replaces nil lists with empty ones. Profiles decoded from JSON
// that omitted a list would otherwise round-trip as null.
func (p *Profile) Normalize() {
	if p == nil {
		return
	}
	m := &p.MedicalHistory
	if m.ChronicConditions == nil {
		m.ChronicConditions = []string{}
	}
	if m.Allergies == nil {
		m.Allergies = []Allergy{}
	}
	if m.Medications == nil {
		m.Medications = []Medication{}
	}
	if m.Surgeries == nil {
		m.Surgeries = []Surgery{}
	}
	if m.Vaccinations == nil {
		m.Vaccinations = []Vaccination{}
	}
	if m.RecentVisits == nil {
		m.RecentVisits = []RecentVisit{}
	}
}

// Clone returns a deep copy. Lists are copied so edits on the copy never
// alias the original.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	m := &c.MedicalHistory
	m.ChronicConditions = append([]string{}, p.MedicalHistory.ChronicConditions...)
	m.Allergies = append([]Allergy{}, p.MedicalHistory.Allergies...)
	m.Medications = append([]Medication{}, p.MedicalHistory.Medications...)
	m.Surgeries = append([]Surgery{}, p.MedicalHistory.Surgeries...)
	m.Vaccinations = append([]Vaccination{}, p.MedicalHistory.Vaccinations...)
	m.RecentVisits = append([]RecentVisit{}, p.MedicalHistory.RecentVisits...)
	return &c
}

package intake

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go-health-companion/internal/domain/entity"
)

var (
	ErrUnknownField   = errors.New("unknown profile field")
	ErrUnknownList    = errors.New("unknown profile list")
	ErrItemIndex      = errors.New("list item index out of range")
	ErrIncompleteItem = errors.New("list item is missing required fields")
)

// List names accepted by AppendItem, UpdateItem and RemoveItem.
const (
	ListChronicConditions = "chronic_conditions"
	ListAllergies         = "allergies"
	ListMedications       = "medications"
	ListSurgeries         = "surgeries"
	ListVaccinations      = "vaccinations"
	ListRecentVisits      = "recent_visits"
)

// Message is a typed update emitted by a field editor.
type Message interface {
	isMessage()
}

// SetField sets a scalar field addressed by its JSON path,
// e.g. "personal_details.address.city".
type SetField struct {
	Path  string
	Value string
}

// AppendItem appends an item to a medical-history list. Item keys are the
// item's JSON field names.
type AppendItem struct {
	List string
	Item map[string]string
}

// UpdateItem edits one field of an existing list item in place.
type UpdateItem struct {
	List  string
	Index int
	Field string
	Value string
}

// RemoveItem deletes one list item; the remaining items keep their order.
type RemoveItem struct {
	List  string
	Index int
}

func (SetField) isMessage()   {}
func (AppendItem) isMessage() {}
func (UpdateItem) isMessage() {}
func (RemoveItem) isMessage() {}

// Reduce applies msg to a copy of p and returns the copy. p is never modified.
func Reduce(p *entity.Profile, msg Message) (*entity.Profile, error) {
	next := p.Clone()
	if next == nil {
		next = entity.NewProfile()
	}

	switch m := msg.(type) {
	case SetField:
		set, ok := scalarFields[m.Path]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, m.Path)
		}
		set(next, m.Value)
	case AppendItem:
		l, ok := lists[m.List]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownList, m.List)
		}
		for _, f := range l.required {
			if strings.TrimSpace(m.Item[f]) == "" {
				return nil, fmt.Errorf("%w: %s.%s", ErrIncompleteItem, m.List, f)
			}
		}
		l.append(&next.MedicalHistory, m.Item)
	case UpdateItem:
		l, ok := lists[m.List]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownList, m.List)
		}
		if m.Index < 0 || m.Index >= l.length(&next.MedicalHistory) {
			return nil, fmt.Errorf("%w: %s[%d]", ErrItemIndex, m.List, m.Index)
		}
		if !l.set(&next.MedicalHistory, m.Index, m.Field, m.Value) {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, m.List, m.Field)
		}
	case RemoveItem:
		l, ok := lists[m.List]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownList, m.List)
		}
		if m.Index < 0 || m.Index >= l.length(&next.MedicalHistory) {
			return nil, fmt.Errorf("%w: %s[%d]", ErrItemIndex, m.List, m.Index)
		}
		l.remove(&next.MedicalHistory, m.Index)
	default:
		return nil, fmt.Errorf("intake: unsupported message %T", msg)
	}

	return next, nil
}

// parseNumber follows the browser editor: the leading integer digits are
// used and anything unparseable becomes 0. Out-of-range values clamp to the
// int bounds.
func parseNumber(v string) int {
	v = strings.TrimSpace(v)
	end := 0
	if end < len(v) && (v[end] == '-' || v[end] == '+') {
		end++
	}
	digits := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.Atoi(v[:end])
	if errors.Is(err, strconv.ErrRange) {
		if v[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	return n
}

var scalarFields = map[string]func(p *entity.Profile, v string){
	"personal_details.name":           func(p *entity.Profile, v string) { p.PersonalDetails.Name = v },
	"personal_details.age":            func(p *entity.Profile, v string) { p.PersonalDetails.Age = parseNumber(v) },
	"personal_details.gender":         func(p *entity.Profile, v string) { p.PersonalDetails.Gender = v },
	"personal_details.date_of_birth":  func(p *entity.Profile, v string) { p.PersonalDetails.DateOfBirth = v },
	"personal_details.blood_type":     func(p *entity.Profile, v string) { p.PersonalDetails.BloodType = v },
	"personal_details.contact_number": func(p *entity.Profile, v string) { p.PersonalDetails.ContactNumber = v },
	"personal_details.email":          func(p *entity.Profile, v string) { p.PersonalDetails.Email = v },

	"personal_details.address.street":   func(p *entity.Profile, v string) { p.PersonalDetails.Address.Street = v },
	"personal_details.address.city":     func(p *entity.Profile, v string) { p.PersonalDetails.Address.City = v },
	"personal_details.address.state":    func(p *entity.Profile, v string) { p.PersonalDetails.Address.State = v },
	"personal_details.address.zip_code": func(p *entity.Profile, v string) { p.PersonalDetails.Address.ZipCode = v },
	"personal_details.address.country":  func(p *entity.Profile, v string) { p.PersonalDetails.Address.Country = v },

	"personal_details.emergency_contact.name":           func(p *entity.Profile, v string) { p.PersonalDetails.EmergencyContact.Name = v },
	"personal_details.emergency_contact.relationship":   func(p *entity.Profile, v string) { p.PersonalDetails.EmergencyContact.Relationship = v },
	"personal_details.emergency_contact.contact_number": func(p *entity.Profile, v string) { p.PersonalDetails.EmergencyContact.ContactNumber = v },

	"medical_history.insurance_details.provider":      func(p *entity.Profile, v string) { p.MedicalHistory.Insurance.Provider = v },
	"medical_history.insurance_details.policy_number": func(p *entity.Profile, v string) { p.MedicalHistory.Insurance.PolicyNumber = v },
	"medical_history.insurance_details.coverage":      func(p *entity.Profile, v string) { p.MedicalHistory.Insurance.Coverage = v },
	"medical_history.insurance_details.valid_until":   func(p *entity.Profile, v string) { p.MedicalHistory.Insurance.ValidUntil = v },

	"medical_history.lifestyle.smoking":             func(p *entity.Profile, v string) { p.MedicalHistory.Lifestyle.Smoking = v },
	"medical_history.lifestyle.alcohol_consumption": func(p *entity.Profile, v string) { p.MedicalHistory.Lifestyle.AlcoholConsumption = v },
	"medical_history.lifestyle.exercise_frequency":  func(p *entity.Profile, v string) { p.MedicalHistory.Lifestyle.ExerciseFrequency = v },
	"medical_history.lifestyle.diet":                func(p *entity.Profile, v string) { p.MedicalHistory.Lifestyle.Diet = v },

	"medical_history.family_history.father.condition": func(p *entity.Profile, v string) { p.MedicalHistory.FamilyHistory.Father.Condition = v },
	"medical_history.family_history.father.age_of_diagnosis": func(p *entity.Profile, v string) {
		p.MedicalHistory.FamilyHistory.Father.AgeOfDiagnosis = parseNumber(v)
	},
	"medical_history.family_history.mother.condition": func(p *entity.Profile, v string) { p.MedicalHistory.FamilyHistory.Mother.Condition = v },
	"medical_history.family_history.mother.age_of_diagnosis": func(p *entity.Profile, v string) {
		p.MedicalHistory.FamilyHistory.Mother.AgeOfDiagnosis = parseNumber(v)
	},
}

// listOps adapts one typed medical-history list to the generic item messages.
type listOps struct {
	required []string
	length   func(m *entity.MedicalHistory) int
	append   func(m *entity.MedicalHistory, item map[string]string)
	set      func(m *entity.MedicalHistory, i int, field, v string) bool
	remove   func(m *entity.MedicalHistory, i int)
}

func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

var lists = map[string]listOps{
	ListChronicConditions: {
		required: []string{"condition"},
		length:   func(m *entity.MedicalHistory) int { return len(m.ChronicConditions) },
		append: func(m *entity.MedicalHistory, item map[string]string) {
			m.ChronicConditions = append(m.ChronicConditions, strings.TrimSpace(item["condition"]))
		},
		set: func(m *entity.MedicalHistory, i int, field, v string) bool {
			if field != "condition" {
				return false
			}
			m.ChronicConditions[i] = v
			return true
		},
		remove: func(m *entity.MedicalHistory, i int) { m.ChronicConditions = removeAt(m.ChronicConditions, i) },
	},
	ListAllergies: {
		required: []string{"allergen", "reaction"},
		length:   func(m *entity.MedicalHistory) int { return len(m.Allergies) },
		append: func(m *entity.MedicalHistory, item map[string]string) {
			m.Allergies = append(m.Allergies, entity.Allergy{Allergen: item["allergen"], Reaction: item["reaction"]})
		},
		set: func(m *entity.MedicalHistory, i int, field, v string) bool {
			a := &m.Allergies[i]
			switch field {
			case "allergen":
				a.Allergen = v
			case "reaction":
				a.Reaction = v
			default:
				return false
			}
			return true
		},
		remove: func(m *entity.MedicalHistory, i int) { m.Allergies = removeAt(m.Allergies, i) },
	},
	ListMedications: {
		required: []string{"name", "dosage", "frequency"},
		length:   func(m *entity.MedicalHistory) int { return len(m.Medications) },
		append: func(m *entity.MedicalHistory, item map[string]string) {
			m.Medications = append(m.Medications, entity.Medication{Name: item["name"], Dosage: item["dosage"], Frequency: item["frequency"]})
		},
		set: func(m *entity.MedicalHistory, i int, field, v string) bool {
			med := &m.Medications[i]
			switch field {
			case "name":
				med.Name = v
			case "dosage":
				med.Dosage = v
			case "frequency":
				med.Frequency = v
			default:
				return false
			}
			return true
		},
		remove: func(m *entity.MedicalHistory, i int) { m.Medications = removeAt(m.Medications, i) },
	},
	ListSurgeries: {
		required: []string{"procedure", "date", "hospital"},
		length:   func(m *entity.MedicalHistory) int { return len(m.Surgeries) },
		append: func(m *entity.MedicalHistory, item map[string]string) {
			m.Surgeries = append(m.Surgeries, entity.Surgery{Procedure: item["procedure"], Date: item["date"], Hospital: item["hospital"]})
		},
		set: func(m *entity.MedicalHistory, i int, field, v string) bool {
			s := &m.Surgeries[i]
			switch field {
			case "procedure":
				s.Procedure = v
			case "date":
				s.Date = v
			case "hospital":
				s.Hospital = v
			default:
				return false
			}
			return true
		},
		remove: func(m *entity.MedicalHistory, i int) { m.Surgeries = removeAt(m.Surgeries, i) },
	},
	ListVaccinations: {
		required: []string{"vaccine", "date", "dose"},
		length:   func(m *entity.MedicalHistory) int { return len(m.Vaccinations) },
		append: func(m *entity.MedicalHistory, item map[string]string) {
			m.Vaccinations = append(m.Vaccinations, entity.Vaccination{Vaccine: item["vaccine"], Date: item["date"], Dose: item["dose"]})
		},
		set: func(m *entity.MedicalHistory, i int, field, v string) bool {
			vac := &m.Vaccinations[i]
			switch field {
			case "vaccine":
				vac.Vaccine = v
			case "date":
				vac.Date = v
			case "dose":
				vac.Dose = v
			default:
				return false
			}
			return true
		},
		remove: func(m *entity.MedicalHistory, i int) { m.Vaccinations = removeAt(m.Vaccinations, i) },
	},
	ListRecentVisits: {
		required: []string{"date", "doctor", "reason"},
		length:   func(m *entity.MedicalHistory) int { return len(m.RecentVisits) },
		append: func(m *entity.MedicalHistory, item map[string]string) {
			m.RecentVisits = append(m.RecentVisits, entity.RecentVisit{Date: item["date"], Doctor: item["doctor"], Reason: item["reason"], Notes: item["notes"]})
		},
		set: func(m *entity.MedicalHistory, i int, field, v string) bool {
			rv := &m.RecentVisits[i]
			switch field {
			case "date":
				rv.Date = v
			case "doctor":
				rv.Doctor = v
			case "reason":
				rv.Reason = v
			case "notes":
				rv.Notes = v
			default:
				return false
			}
			return true
		},
		remove: func(m *entity.MedicalHistory, i int) { m.RecentVisits = removeAt(m.RecentVisits, i) },
	},
}

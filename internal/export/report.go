// Package export renders a health profile as a printable report.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-health-companion/internal/domain/entity"
)

const ReportTitle = "Health Profile Report"

// Row is one labelled value of a report section. Items, when set, are
// rendered as a bullet list instead of Value.
type Row struct {
	Label string
	Value string
	Items []string
}

type Section struct {
	Title string
	Rows  []Row
}

// Report is the renderer-independent content of an export.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Summary     string
	Sections    []Section
}

// Filename returns the download name for the given extension.
func Filename(p *entity.Profile, ext string) string {
	name := "user"
	if p != nil && strings.TrimSpace(p.PersonalDetails.Name) != "" {
		name = strings.ReplaceAll(strings.TrimSpace(p.PersonalDetails.Name), " ", "_")
	}
	return fmt.Sprintf("health_profile_%s.%s", name, ext)
}

func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return "N/A"
	}
	return v
}

func intOrNA(v int) string {
	if v == 0 {
		return "N/A"
	}
	return strconv.Itoa(v)
}

func noneIfEmpty(items []string) []string {
	if len(items) == 0 {
		return []string{"None"}
	}
	return items
}

// BuildReport lays out the profile in the order it is collected.
func BuildReport(p *entity.Profile, now time.Time) Report {
	if p == nil {
		p = entity.NewProfile()
	}
	pd := p.PersonalDetails
	mh := p.MedicalHistory

	name := pd.Name
	if name == "" {
		name = "User"
	}
	summary := fmt.Sprintf("This report contains health information for %s, %s years old, %s, with blood type %s.",
		name, intOrNA(pd.Age), strings.ToLower(orNA(pd.Gender)), orNA(pd.BloodType))

	addr := pd.Address
	address := strings.Join(nonEmpty(addr.Street, addr.City, addr.State, addr.ZipCode, addr.Country), ", ")
	ec := pd.EmergencyContact

	personal := Section{Title: "Personal Details", Rows: []Row{
		{Label: "Name", Value: orNA(pd.Name)},
		{Label: "Age", Value: intOrNA(pd.Age)},
		{Label: "Gender", Value: orNA(pd.Gender)},
		{Label: "Date Of Birth", Value: orNA(pd.DateOfBirth)},
		{Label: "Blood Type", Value: orNA(pd.BloodType)},
		{Label: "Contact Number", Value: orNA(pd.ContactNumber)},
		{Label: "Email", Value: orNA(pd.Email)},
		{Label: "Address", Value: orNA(address)},
		{Label: "Emergency Contact", Value: orNA(strings.Join(nonEmpty(ec.Name, ec.Relationship, ec.ContactNumber), ", "))},
	}}

	allergies := make([]string, 0, len(mh.Allergies))
	for _, a := range mh.Allergies {
		allergies = append(allergies, fmt.Sprintf("Allergen: %s, Reaction: %s", a.Allergen, a.Reaction))
	}
	meds := make([]string, 0, len(mh.Medications))
	for _, m := range mh.Medications {
		meds = append(meds, fmt.Sprintf("Name: %s, Dosage: %s, Frequency: %s", m.Name, m.Dosage, m.Frequency))
	}
	surgeries := make([]string, 0, len(mh.Surgeries))
	for _, s := range mh.Surgeries {
		surgeries = append(surgeries, fmt.Sprintf("Procedure: %s, Date: %s, Hospital: %s", s.Procedure, s.Date, s.Hospital))
	}
	vaccines := make([]string, 0, len(mh.Vaccinations))
	for _, v := range mh.Vaccinations {
		vaccines = append(vaccines, fmt.Sprintf("Vaccine: %s, Date: %s, Dose: %s", v.Vaccine, v.Date, v.Dose))
	}
	visits := make([]string, 0, len(mh.RecentVisits))
	for _, v := range mh.RecentVisits {
		line := fmt.Sprintf("Date: %s, Doctor: %s, Reason: %s", v.Date, v.Doctor, v.Reason)
		if v.Notes != "" {
			line += ", Notes: " + v.Notes
		}
		visits = append(visits, line)
	}

	medical := Section{Title: "Medical History", Rows: []Row{
		{Label: "Chronic Conditions", Items: noneIfEmpty(mh.ChronicConditions)},
		{Label: "Allergies", Items: noneIfEmpty(allergies)},
		{Label: "Medications", Items: noneIfEmpty(meds)},
		{Label: "Surgeries", Items: noneIfEmpty(surgeries)},
		{Label: "Vaccinations", Items: noneIfEmpty(vaccines)},
		{Label: "Recent Visits", Items: noneIfEmpty(visits)},
	}}

	in := mh.Insurance
	insurance := Section{Title: "Insurance Details", Rows: []Row{
		{Label: "Provider", Value: orNA(in.Provider)},
		{Label: "Policy Number", Value: orNA(in.PolicyNumber)},
		{Label: "Coverage", Value: orNA(in.Coverage)},
		{Label: "Valid Until", Value: orNA(in.ValidUntil)},
	}}

	ls := mh.Lifestyle
	lifestyle := Section{Title: "Lifestyle Information", Rows: []Row{
		{Label: "Smoking", Value: orNA(ls.Smoking)},
		{Label: "Alcohol Consumption", Value: orNA(ls.AlcoholConsumption)},
		{Label: "Exercise Frequency", Value: orNA(ls.ExerciseFrequency)},
		{Label: "Diet", Value: orNA(ls.Diet)},
	}}

	fh := mh.FamilyHistory
	family := Section{Title: "Family History", Rows: []Row{
		{Label: "Father", Value: parentLine(fh.Father)},
		{Label: "Mother", Value: parentLine(fh.Mother)},
	}}

	return Report{
		Title:       ReportTitle,
		GeneratedAt: now,
		Summary:     summary,
		Sections:    []Section{personal, medical, insurance, lifestyle, family},
	}
}

func parentLine(c entity.FamilyCondition) string {
	if c.Condition == "" {
		return "N/A"
	}
	if c.AgeOfDiagnosis > 0 {
		return fmt.Sprintf("%s (diagnosed at %d)", c.Condition, c.AgeOfDiagnosis)
	}
	return c.Condition
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

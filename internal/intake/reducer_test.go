package intake

import (
	"math"
	"testing"

	"go-health-companion/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_SetField(t *testing.T) {
	p := entity.NewProfile()

	next, err := Reduce(p, SetField{Path: "personal_details.address.city", Value: "Pune"})
	require.NoError(t, err)

	assert.Equal(t, "Pune", next.PersonalDetails.Address.City)
	assert.Empty(t, p.PersonalDetails.Address.City, "input must not be modified")
}

func TestReduce_NumericFieldsFollowParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "42", want: 42},
		{in: "42abc", want: 42},
		{in: "abc", want: 0},
		{in: "", want: 0},
		{in: " 7 ", want: 7},
		{in: "-3", want: -3},
		{in: "+5", want: 5},
		{in: "-", want: 0},
		{in: "99999999999999999999", want: math.MaxInt},
		{in: "9223372036854775808yrs", want: math.MaxInt},
		{in: "-99999999999999999999", want: math.MinInt},
	}

	for _, tt := range tests {
		next, err := Reduce(entity.NewProfile(), SetField{Path: "personal_details.age", Value: tt.in})
		require.NoError(t, err)
		assert.Equal(t, tt.want, next.PersonalDetails.Age, "input %q", tt.in)
	}
}

func TestReduce_HugeAgeKeepsFamilyHistoryValid(t *testing.T) {
	p := entity.NewProfile()
	var err error
	for _, msg := range []Message{
		SetField{Path: "medical_history.family_history.father.condition", Value: "Diabetes"},
		SetField{Path: "medical_history.family_history.father.age_of_diagnosis", Value: "9223372036854775808"},
		SetField{Path: "medical_history.family_history.mother.condition", Value: "Asthma"},
		SetField{Path: "medical_history.family_history.mother.age_of_diagnosis", Value: "18446744073709551617"},
	} {
		p, err = Reduce(p, msg)
		require.NoError(t, err)
	}

	assert.Equal(t, math.MaxInt, p.MedicalHistory.FamilyHistory.Father.AgeOfDiagnosis)
	assert.True(t, IsStepValid(p, StepFamilyHistory))
}

func TestReduce_UnknownField(t *testing.T) {
	_, err := Reduce(entity.NewProfile(), SetField{Path: "personal_details.shoe_size", Value: "9"})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestReduce_AppendItem(t *testing.T) {
	next, err := Reduce(entity.NewProfile(), AppendItem{
		List: ListAllergies,
		Item: map[string]string{"allergen": "Peanuts", "reaction": "Hives"},
	})
	require.NoError(t, err)
	assert.Equal(t, []entity.Allergy{{Allergen: "Peanuts", Reaction: "Hives"}}, next.MedicalHistory.Allergies)
}

func TestReduce_AppendItemRequiresFields(t *testing.T) {
	p := entity.NewProfile()

	_, err := Reduce(p, AppendItem{List: ListAllergies, Item: map[string]string{"allergen": "Peanuts"}})
	assert.ErrorIs(t, err, ErrIncompleteItem)

	_, err = Reduce(p, AppendItem{List: ListChronicConditions, Item: map[string]string{"condition": "   "}})
	assert.ErrorIs(t, err, ErrIncompleteItem)

	assert.Empty(t, p.MedicalHistory.Allergies)
}

func TestReduce_RecentVisitNotesOptional(t *testing.T) {
	next, err := Reduce(entity.NewProfile(), AppendItem{
		List: ListRecentVisits,
		Item: map[string]string{"date": "2024-01-01", "doctor": "Dr. Rao", "reason": "Checkup"},
	})
	require.NoError(t, err)
	require.Len(t, next.MedicalHistory.RecentVisits, 1)
	assert.Empty(t, next.MedicalHistory.RecentVisits[0].Notes)
}

func TestReduce_UpdateItem(t *testing.T) {
	p := DemoProfile(0)

	next, err := Reduce(p, UpdateItem{List: ListMedications, Index: 1, Field: "dosage", Value: "80mg"})
	require.NoError(t, err)
	assert.Equal(t, "80mg", next.MedicalHistory.Medications[1].Dosage)
	assert.Equal(t, "40mg", p.MedicalHistory.Medications[1].Dosage)

	_, err = Reduce(p, UpdateItem{List: ListMedications, Index: 9, Field: "dosage", Value: "1"})
	assert.ErrorIs(t, err, ErrItemIndex)

	_, err = Reduce(p, UpdateItem{List: ListMedications, Index: 0, Field: "colour", Value: "red"})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestReduce_RemoveItemKeepsOrder(t *testing.T) {
	p := entity.NewProfile()
	p.MedicalHistory.ChronicConditions = []string{"a", "b", "c"}

	next, err := Reduce(p, RemoveItem{List: ListChronicConditions, Index: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, next.MedicalHistory.ChronicConditions)
	assert.Equal(t, []string{"a", "b", "c"}, p.MedicalHistory.ChronicConditions)

	_, err = Reduce(p, RemoveItem{List: ListChronicConditions, Index: -1})
	assert.ErrorIs(t, err, ErrItemIndex)
}

func TestReduce_UnknownList(t *testing.T) {
	_, err := Reduce(entity.NewProfile(), RemoveItem{List: "pets", Index: 0})
	assert.ErrorIs(t, err, ErrUnknownList)
}

func TestForms_PathsAreReducible(t *testing.T) {
	for _, form := range Forms() {
		for _, f := range form.Fields {
			_, err := Reduce(entity.NewProfile(), SetField{Path: f.Path, Value: "1"})
			assert.NoError(t, err, "field %s", f.Path)
		}
		for _, l := range form.Lists {
			_, ok := lists[l.List]
			assert.True(t, ok, "list %s", l.List)
		}
	}
}

func TestDemoProfiles(t *testing.T) {
	require.Equal(t, 3, DemoProfileCount())

	for i := 0; i < DemoProfileCount(); i++ {
		assert.Equal(t, LastStep, ResumePoint(DemoProfile(i)))
	}

	assert.Equal(t, DemoProfile(0), DemoProfile(3))
	assert.Equal(t, DemoProfile(2), DemoProfile(-1))

	a := DemoProfile(0)
	a.MedicalHistory.Allergies[0].Allergen = "changed"
	assert.NotEqual(t, "changed", DemoProfile(0).MedicalHistory.Allergies[0].Allergen)
}

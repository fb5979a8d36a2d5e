package intake

// FieldKind selects the input control used to edit a field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldNumber   FieldKind = "number"
	FieldDate     FieldKind = "date"
	FieldEmail    FieldKind = "email"
	FieldTel      FieldKind = "tel"
	FieldSelect   FieldKind = "select"
	FieldTextarea FieldKind = "textarea"
)

// Field describes one labeled editor. Editors hold no value of their own:
// every change is sent as a SetField (or UpdateItem) carrying the raw string.
// Required is a display marker only; completeness is decided by the step validators.
type Field struct {
	Path     string    `json:"path"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required,omitempty"`
	Info     string    `json:"info,omitempty"`
	Options  []string  `json:"options,omitempty"`
}

// ListEditor describes an append/remove editor for one list of the medical history.
// Item field paths are relative to an item.
type ListEditor struct {
	List   string  `json:"list"`
	Label  string  `json:"label"`
	Info   string  `json:"info,omitempty"`
	Fields []Field `json:"fields"`
}

// Form is the set of editors rendered on one step.
type Form struct {
	Step   Step         `json:"step"`
	Title  string       `json:"title"`
	Fields []Field      `json:"fields"`
	Lists  []ListEditor `json:"lists,omitempty"`
}

var (
	genderOptions    = []string{"Male", "Female", "Other"}
	coverageOptions  = []string{"Basic", "Comprehensive", "Premium", "Family Floater"}
	smokingOptions   = []string{"Never Smoked", "Former Smoker", "Current Smoker", "Occasional Smoker"}
	frequencyOptions = []string{"Never", "Rarely", "Occasionally", "Regularly", "Daily"}
)

var forms = [StepCount]Form{
	{
		Step:  StepPersonalDetails,
		Title: "Personal Details",
		Fields: []Field{
			{Path: "personal_details.name", Label: "Full Name", Kind: FieldText, Required: true, Info: "Enter your legal full name as it appears on official documents"},
			{Path: "personal_details.age", Label: "Age", Kind: FieldNumber, Required: true, Info: "Your current age in years"},
			{Path: "personal_details.gender", Label: "Gender", Kind: FieldSelect, Required: true, Options: genderOptions},
			{Path: "personal_details.date_of_birth", Label: "Date of Birth", Kind: FieldDate, Required: true, Info: "Your date of birth"},
			{Path: "personal_details.blood_type", Label: "Blood Type", Kind: FieldText, Info: "Your blood type (e.g., A+, B-, O+, AB+)"},
			{Path: "personal_details.contact_number", Label: "Contact Number", Kind: FieldTel, Required: true, Info: "Your primary contact number with country code"},
			{Path: "personal_details.email", Label: "Email", Kind: FieldEmail, Required: true, Info: "Your active email address for important medical communications"},
			{Path: "personal_details.address.street", Label: "Street", Kind: FieldText, Required: true, Info: "Your street address including house/apartment number"},
			{Path: "personal_details.address.city", Label: "City", Kind: FieldText, Required: true, Info: "City or town of residence"},
			{Path: "personal_details.address.state", Label: "State", Kind: FieldText, Required: true, Info: "State or province of residence"},
			{Path: "personal_details.address.zip_code", Label: "ZIP Code", Kind: FieldText, Required: true, Info: "Your area's postal/ZIP code"},
			{Path: "personal_details.address.country", Label: "Country", Kind: FieldText, Required: true, Info: "Country of residence"},
			{Path: "personal_details.emergency_contact.name", Label: "Name", Kind: FieldText, Required: true, Info: "Full name of your emergency contact person"},
			{Path: "personal_details.emergency_contact.relationship", Label: "Relationship", Kind: FieldText, Required: true, Info: "Your relationship with the emergency contact (e.g., Spouse, Parent, Sibling)"},
			{Path: "personal_details.emergency_contact.contact_number", Label: "Contact Number", Kind: FieldTel, Required: true, Info: "Contact number of your emergency contact"},
		},
	},
	{
		Step:  StepMedicalHistory,
		Title: "Medical History",
		Lists: []ListEditor{
			{List: ListChronicConditions, Label: "Chronic Conditions", Info: "List any long-term medical conditions you have been diagnosed with", Fields: []Field{
				{Path: "condition", Label: "Condition", Kind: FieldText, Required: true},
			}},
			{List: ListAllergies, Label: "Allergies", Fields: []Field{
				{Path: "allergen", Label: "Allergen", Kind: FieldText, Required: true, Info: "Specify what you are allergic to"},
				{Path: "reaction", Label: "Reaction", Kind: FieldText, Required: true, Info: "Describe how your body reacts to this allergen"},
			}},
			{List: ListMedications, Label: "Current Medications", Fields: []Field{
				{Path: "name", Label: "Medication Name", Kind: FieldText, Required: true, Info: "Enter the name of the medication"},
				{Path: "dosage", Label: "Dosage", Kind: FieldText, Required: true, Info: "Specify the strength/amount of medication"},
				{Path: "frequency", Label: "Frequency", Kind: FieldText, Required: true, Info: "How often you take this medication"},
			}},
			{List: ListSurgeries, Label: "Past Surgeries", Fields: []Field{
				{Path: "procedure", Label: "Procedure", Kind: FieldText, Required: true, Info: "Name of the surgical procedure"},
				{Path: "date", Label: "Date", Kind: FieldDate, Required: true, Info: "Date when the surgery was performed"},
				{Path: "hospital", Label: "Hospital", Kind: FieldText, Required: true, Info: "Name of the hospital where surgery was performed"},
			}},
			{List: ListVaccinations, Label: "Vaccinations", Fields: []Field{
				{Path: "vaccine", Label: "Vaccine", Kind: FieldText, Required: true, Info: "Name of the vaccine"},
				{Path: "date", Label: "Date", Kind: FieldDate, Required: true, Info: "Date when the vaccine was administered"},
				{Path: "dose", Label: "Dose", Kind: FieldText, Required: true, Info: "Which dose in the vaccination series"},
			}},
			{List: ListRecentVisits, Label: "Recent Medical Visits", Fields: []Field{
				{Path: "date", Label: "Date", Kind: FieldDate, Required: true, Info: "Date of the medical visit"},
				{Path: "doctor", Label: "Doctor", Kind: FieldText, Required: true, Info: "Name of the doctor you consulted"},
				{Path: "reason", Label: "Reason", Kind: FieldText, Required: true, Info: "Purpose of the visit"},
				{Path: "notes", Label: "Additional Notes", Kind: FieldTextarea, Info: "Any additional information or observations from the visit"},
			}},
		},
	},
	{
		Step:  StepInsurance,
		Title: "Insurance Details",
		Fields: []Field{
			{Path: "medical_history.insurance_details.provider", Label: "Insurance Provider", Kind: FieldText, Required: true, Info: "Name of your health insurance company"},
			{Path: "medical_history.insurance_details.policy_number", Label: "Policy Number", Kind: FieldText, Required: true, Info: "Your unique insurance policy number as shown on your insurance card"},
			{Path: "medical_history.insurance_details.coverage", Label: "Coverage Type", Kind: FieldSelect, Required: true, Options: coverageOptions},
			{Path: "medical_history.insurance_details.valid_until", Label: "Valid Until", Kind: FieldDate, Required: true, Info: "Expiry date of your insurance policy"},
		},
	},
	{
		Step:  StepLifestyle,
		Title: "Lifestyle",
		Fields: []Field{
			{Path: "medical_history.lifestyle.smoking", Label: "Smoking Status", Kind: FieldSelect, Required: true, Options: smokingOptions},
			{Path: "medical_history.lifestyle.alcohol_consumption", Label: "Alcohol Consumption", Kind: FieldSelect, Required: true, Options: frequencyOptions},
			{Path: "medical_history.lifestyle.exercise_frequency", Label: "Exercise Frequency", Kind: FieldSelect, Required: true, Options: frequencyOptions},
			{Path: "medical_history.lifestyle.diet", Label: "Diet", Kind: FieldTextarea, Required: true, Info: "Describe your diet (e.g., vegetarian, low-carb, gluten-free)"},
		},
	},
	{
		Step:  StepFamilyHistory,
		Title: "Family History",
		Fields: []Field{
			{Path: "medical_history.family_history.father.condition", Label: "Medical Condition", Kind: FieldText, Required: true, Info: "Any significant health conditions your father has/had"},
			{Path: "medical_history.family_history.father.age_of_diagnosis", Label: "Age of Diagnosis", Kind: FieldNumber, Required: true, Info: "At what age was the condition diagnosed"},
			{Path: "medical_history.family_history.mother.condition", Label: "Medical Condition", Kind: FieldText, Required: true, Info: "Any significant health conditions your mother has/had"},
			{Path: "medical_history.family_history.mother.age_of_diagnosis", Label: "Age of Diagnosis", Kind: FieldNumber, Required: true, Info: "At what age was the condition diagnosed"},
		},
	},
}

// Forms returns the editor catalog of every step, in step order.
func Forms() []Form {
	out := make([]Form, StepCount)
	copy(out, forms[:])
	return out
}

// FormFor returns the editors of step s.
func FormFor(s Step) (Form, bool) {
	if !s.Valid() {
		return Form{}, false
	}
	return forms[s], true
}

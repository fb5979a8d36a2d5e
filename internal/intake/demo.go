package intake

import "go-health-companion/internal/domain/entity"

// DemoProfileCount is the number of built-in demo profiles.
func DemoProfileCount() int {
	return len(demoProfiles)
}

// DemoProfile returns a copy of demo profile i, wrapping out-of-range indexes.
func DemoProfile(i int) *entity.Profile {
	n := len(demoProfiles)
	i = ((i % n) + n) % n
	return demoProfiles[i].Clone()
}

var demoProfiles = []*entity.Profile{
	{
		PersonalDetails: entity.PersonalDetails{
			Name:          "Rajesh Kumar",
			Age:           32,
			Gender:        "Male",
			DateOfBirth:   "1992-05-15",
			BloodType:     "B+",
			ContactNumber: "+91-9876543210",
			Email:         "rajesh.kumar@example.com",
			Address: entity.Address{
				Street: "123 Sector 15", City: "New Delhi", State: "Delhi", ZipCode: "110015", Country: "India",
			},
			EmergencyContact: entity.EmergencyContact{
				Name: "Priya Kumar", Relationship: "Wife", ContactNumber: "+91-9876543211",
			},
		},
		MedicalHistory: entity.MedicalHistory{
			ChronicConditions: []string{"Diabetes Type 2", "Hypertension"},
			Allergies: []entity.Allergy{
				{Allergen: "Dairy", Reaction: "Lactose Intolerance"},
				{Allergen: "Amoxicillin", Reaction: "Skin Rash"},
			},
			Medications: []entity.Medication{
				{Name: "Metformin", Dosage: "500mg", Frequency: "Twice daily"},
				{Name: "Telmisartan", Dosage: "40mg", Frequency: "Once daily"},
			},
			Surgeries: []entity.Surgery{
				{Procedure: "Appendectomy", Date: "2018-06-20", Hospital: "Apollo Hospital, Delhi"},
			},
			Vaccinations: []entity.Vaccination{
				{Vaccine: "COVID-19 (Covishield)", Date: "2021-03-15", Dose: "2nd dose"},
				{Vaccine: "Hepatitis B", Date: "2019-08-10", Dose: "Complete"},
			},
			RecentVisits: []entity.RecentVisit{
				{Date: "2024-01-10", Doctor: "Dr. Sharma", Reason: "Diabetes Follow-up", Notes: "Blood sugar levels stable"},
			},
			FamilyHistory: entity.FamilyHistory{
				Father: entity.FamilyCondition{Condition: "Heart Disease", AgeOfDiagnosis: 52},
				Mother: entity.FamilyCondition{Condition: "Diabetes Type 2", AgeOfDiagnosis: 48},
			},
			Lifestyle: entity.Lifestyle{
				Smoking:            "Never",
				AlcoholConsumption: "Never",
				ExerciseFrequency:  "3-4 times a week",
				Diet:               "Vegetarian diet with low glycemic index foods",
			},
			Insurance: entity.Insurance{
				Provider: "Star Health Insurance", PolicyNumber: "STAR123456789", Coverage: "Family Floater", ValidUntil: "2025-12-31",
			},
		},
	},
	{
		PersonalDetails: entity.PersonalDetails{
			Name:          "Priya Patel",
			Age:           28,
			Gender:        "Female",
			DateOfBirth:   "1996-07-22",
			BloodType:     "A+",
			ContactNumber: "+91-8765432109",
			Email:         "priya.patel@example.com",
			Address: entity.Address{
				Street: "45 Satellite Road", City: "Ahmedabad", State: "Gujarat", ZipCode: "380015", Country: "India",
			},
			EmergencyContact: entity.EmergencyContact{
				Name: "Amit Patel", Relationship: "Brother", ContactNumber: "+91-8765432108",
			},
		},
		MedicalHistory: entity.MedicalHistory{
			ChronicConditions: []string{"Asthma", "Thyroid"},
			Allergies: []entity.Allergy{
				{Allergen: "Dust", Reaction: "Respiratory distress"},
				{Allergen: "Peanuts", Reaction: "Severe allergic reaction"},
			},
			Medications: []entity.Medication{
				{Name: "Levothyroxine", Dosage: "25mcg", Frequency: "Once daily"},
				{Name: "Salbutamol", Dosage: "100mcg", Frequency: "As needed"},
			},
			Surgeries: []entity.Surgery{
				{Procedure: "Tonsillectomy", Date: "2015-03-15", Hospital: "Sterling Hospital, Ahmedabad"},
			},
			Vaccinations: []entity.Vaccination{
				{Vaccine: "COVID-19 (Covaxin)", Date: "2021-04-20", Dose: "2nd dose"},
				{Vaccine: "Flu Shot", Date: "2023-10-15", Dose: "Annual"},
			},
			RecentVisits: []entity.RecentVisit{
				{Date: "2024-02-05", Doctor: "Dr. Mehta", Reason: "Thyroid Check", Notes: "TSH levels normalized"},
			},
			FamilyHistory: entity.FamilyHistory{
				Father: entity.FamilyCondition{Condition: "Asthma", AgeOfDiagnosis: 35},
				Mother: entity.FamilyCondition{Condition: "Hypothyroidism", AgeOfDiagnosis: 42},
			},
			Lifestyle: entity.Lifestyle{
				Smoking:            "Never",
				AlcoholConsumption: "Never",
				ExerciseFrequency:  "5+ times a week",
				Diet:               "Vegetarian with focus on protein-rich foods",
			},
			Insurance: entity.Insurance{
				Provider: "HDFC ERGO Health", PolicyNumber: "HDFC987654321", Coverage: "Premium", ValidUntil: "2024-12-31",
			},
		},
	},
	{
		PersonalDetails: entity.PersonalDetails{
			Name:          "Arjun Reddy",
			Age:           45,
			Gender:        "Male",
			DateOfBirth:   "1979-11-30",
			BloodType:     "O+",
			ContactNumber: "+91-7654321098",
			Email:         "arjun.reddy@example.com",
			Address: entity.Address{
				Street: "789 Jubilee Hills", City: "Hyderabad", State: "Telangana", ZipCode: "500033", Country: "India",
			},
			EmergencyContact: entity.EmergencyContact{
				Name: "Meera Reddy", Relationship: "Spouse", ContactNumber: "+91-7654321097",
			},
		},
		MedicalHistory: entity.MedicalHistory{
			ChronicConditions: []string{"High Cholesterol", "GERD"},
			Allergies: []entity.Allergy{
				{Allergen: "Shellfish", Reaction: "Severe allergic reaction"},
				{Allergen: "Aspirin", Reaction: "Stomach irritation"},
			},
			Medications: []entity.Medication{
				{Name: "Rosuvastatin", Dosage: "10mg", Frequency: "Once daily"},
				{Name: "Pantoprazole", Dosage: "40mg", Frequency: "Once daily"},
			},
			Surgeries: []entity.Surgery{
				{Procedure: "Knee Arthroscopy", Date: "2019-09-12", Hospital: "Care Hospital, Hyderabad"},
			},
			Vaccinations: []entity.Vaccination{
				{Vaccine: "COVID-19 (Covishield)", Date: "2021-05-10", Dose: "Booster"},
				{Vaccine: "Pneumococcal", Date: "2022-11-20", Dose: "Complete"},
			},
			RecentVisits: []entity.RecentVisit{
				{Date: "2024-01-20", Doctor: "Dr. Rao", Reason: "Annual Physical", Notes: "Cholesterol levels need monitoring"},
			},
			FamilyHistory: entity.FamilyHistory{
				Father: entity.FamilyCondition{Condition: "Type 2 Diabetes", AgeOfDiagnosis: 58},
				Mother: entity.FamilyCondition{Condition: "Osteoporosis", AgeOfDiagnosis: 62},
			},
			Lifestyle: entity.Lifestyle{
				Smoking:            "Former",
				AlcoholConsumption: "Occasionally",
				ExerciseFrequency:  "2-3 times a week",
				Diet:               "Non-vegetarian, following low-fat diet",
			},
			Insurance: entity.Insurance{
				Provider: "Max Bupa Health Insurance", PolicyNumber: "MAX456789012", Coverage: "Comprehensive", ValidUntil: "2025-06-30",
			},
		},
	},
}

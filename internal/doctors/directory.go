package doctors

import (
	"strings"
	"time"
)

// directory is the static doctor roster. Availability keys are lowercase
// weekday names.
var directory = []Doctor{
	{
		ID:             "dr-sarah-johnson",
		Name:           "Dr. Sarah Johnson",
		Specialty:      "Dermatologist & Cosmetic Specialist",
		Experience:     "12 years",
		Rating:         4.9,
		Reviews:        324,
		Price:          899,
		Languages:      []string{"English", "Hindi"},
		Location:       "Downtown Medical Center, Mumbai",
		Bio:            "Board-certified dermatologist with over 12 years of experience in treating skin conditions and cosmetic procedures.",
		Education:      []string{"MBBS - King George Medical University", "MD Dermatology - AIIMS Delhi"},
		Certifications: []string{"Board Certified Dermatologist", "Cosmetic Dermatology Specialist"},
		Availability: map[string][]string{
			"monday":    {"9:00 AM", "10:30 AM", "2:00 PM", "3:30 PM"},
			"tuesday":   {"9:00 AM", "10:30 AM", "2:00 PM", "3:30 PM"},
			"wednesday": {"9:00 AM", "10:30 AM", "2:00 PM", "3:30 PM"},
			"thursday":  {"9:00 AM", "10:30 AM", "2:00 PM", "3:30 PM"},
			"friday":    {"9:00 AM", "10:30 AM", "2:00 PM", "3:30 PM"},
			"saturday":  {"9:00 AM", "11:00 AM"},
			"sunday":    {},
		},
		ConsultationTypes: []string{ConsultationVideo, ConsultationInPerson},
	},
	{
		ID:             "dr-raj-patel",
		Name:           "Dr. Raj Patel",
		Specialty:      "Clinical Dermatologist",
		Experience:     "8 years",
		Rating:         4.8,
		Reviews:        256,
		Price:          799,
		Languages:      []string{"English", "Hindi", "Gujarati"},
		Location:       "Westside Clinic, Pune",
		Bio:            "Specializes in clinical dermatology with expertise in treating acne, eczema, and other skin disorders.",
		Education:      []string{"MBBS - Gujarat University", "MD Dermatology - BJ Medical College"},
		Certifications: []string{"Board Certified Dermatologist", "Clinical Research Specialist"},
		Availability: map[string][]string{
			"monday":    {"9:30 AM", "11:00 AM", "1:00 PM", "4:00 PM"},
			"tuesday":   {"9:30 AM", "11:00 AM", "1:00 PM", "4:00 PM"},
			"wednesday": {"9:30 AM", "11:00 AM", "1:00 PM", "4:00 PM"},
			"thursday":  {"9:30 AM", "11:00 AM", "1:00 PM", "4:00 PM"},
			"friday":    {"9:30 AM", "11:00 AM", "1:00 PM", "4:00 PM"},
			"saturday":  {"10:00 AM", "12:00 PM"},
			"sunday":    {},
		},
		ConsultationTypes: []string{ConsultationVideo, ConsultationInPerson},
	},
	{
		ID:             "dr-lisa-chen",
		Name:           "Dr. Lisa Chen",
		Specialty:      "Pediatric & Adult Dermatology",
		Experience:     "15 years",
		Rating:         4.9,
		Reviews:        412,
		Price:          999,
		Languages:      []string{"English", "Hindi"},
		Location:       "Central Health Plaza, Delhi",
		Bio:            "Expert in both pediatric and adult dermatology with extensive experience in treating complex skin conditions.",
		Education:      []string{"MBBS - Delhi University", "MD Dermatology - AIIMS Delhi", "Fellowship in Pediatric Dermatology"},
		Certifications: []string{"Board Certified Dermatologist", "Pediatric Dermatology Specialist", "Mohs Surgery Certified"},
		Availability: map[string][]string{
			"monday":    {"8:00 AM", "10:00 AM", "1:30 PM", "3:00 PM"},
			"tuesday":   {"8:00 AM", "10:00 AM", "1:30 PM", "3:00 PM"},
			"wednesday": {"8:00 AM", "10:00 AM", "1:30 PM", "3:00 PM"},
			"thursday":  {"8:00 AM", "10:00 AM", "1:30 PM", "3:00 PM"},
			"friday":    {"8:00 AM", "10:00 AM", "1:30 PM", "3:00 PM"},
			"saturday":  {"9:00 AM", "11:00 AM"},
			"sunday":    {},
		},
		ConsultationTypes: []string{ConsultationVideo, ConsultationInPerson},
	},
}

// List returns the full roster, optionally filtered by consultation type.
func List(consultationType string) []Doctor {
	if consultationType == "" {
		out := make([]Doctor, len(directory))
		copy(out, directory)
		return out
	}
	var out []Doctor
	for _, d := range directory {
		for _, t := range d.ConsultationTypes {
			if strings.EqualFold(t, consultationType) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// GetByID returns a doctor from the roster.
func GetByID(doctorID string) (Doctor, bool) {
	for _, d := range directory {
		if d.ID == doctorID {
			return d, true
		}
	}
	return Doctor{}, false
}

// AvailableSlots returns a doctor's slots for a given date.
func AvailableSlots(doctorID string, date time.Time) []string {
	doctor, ok := GetByID(doctorID)
	if !ok {
		return nil
	}
	day := strings.ToLower(date.Weekday().String())
	return doctor.Availability[day]
}

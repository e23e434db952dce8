package model

import "strconv"

// RegistrationInput carries the raw signup form fields as submitted.
// Field names mirror the form; everything arrives as a string and is
// validated before any store access happens.
type RegistrationInput struct {
	InstitutionName       string
	Email                 string
	Password              string
	InstituteType         string
	InstituteID           string
	AffiliatingUniversity string // optional
	EstablishedYear       string
	State                 string
	District              string
	City                  string
	PinCode               string
	Category              string
	Phone                 string
	AuthorizedPerson      string
	Designation           string
}

// Validate checks field presence and types.
// It returns a *ValidationError naming every missing or invalid field, or
// nil when the input is acceptable.
func (in *RegistrationInput) Validate() error {
	verr := &ValidationError{}

	required := []struct {
		name  string
		value string
	}{
		{"institution_name", in.InstitutionName},
		{"email", in.Email},
		{"password", in.Password},
		{"institute_type", in.InstituteType},
		{"institute_id", in.InstituteID},
		{"established_year", in.EstablishedYear},
		{"state", in.State},
		{"district", in.District},
		{"city", in.City},
		{"pincode", in.PinCode},
		{"category", in.Category},
		{"phone", in.Phone},
		{"authorized_person", in.AuthorizedPerson},
		{"designation", in.Designation},
	}
	for _, f := range required {
		if f.value == "" {
			verr.Missing = append(verr.Missing, f.name)
		}
	}

	if in.EstablishedYear != "" {
		if _, err := strconv.Atoi(in.EstablishedYear); err != nil {
			verr.Invalid = append(verr.Invalid, "established_year")
		}
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return verr
	}
	return nil
}

// Year returns the establishment year as an integer.
// Only meaningful after Validate has succeeded.
func (in *RegistrationInput) Year() int {
	y, _ := strconv.Atoi(in.EstablishedYear)
	return y
}

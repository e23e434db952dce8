package model

import "time"

// Institution holds the profile data of a registered institution account.
// Exactly one row is created per registration, in the same transaction as
// its owning user, and neither is ever updated or deleted afterwards.
type Institution struct {
	ID                    int64
	UserID                int64
	InstitutionName       string
	InstituteType         string
	InstituteID           string
	AffiliatingUniversity string
	YearOfEstablishment   int
	State                 string
	District              string
	City                  string
	PinCode               string
	Category              string
	OfficialEmail         string
	Phone                 string
	AuthorizedPerson      string
	Designation           string
	CreatedAt             time.Time
}

package domain

import "time"

// Account types.
const (
	UserTypeEntrepreneur = "entrepreneur"
	UserTypeInvestor     = "investor"
)

// Profile is the account profile read to select persona defaults and
// welcome copy.
type Profile struct {
	ID        string    `json:"id"`
	UserType  string    `json:"userType"`
	FullName  string    `json:"fullName"`
	Company   string    `json:"company"`
	Industry  string    `json:"industry"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidUserType reports whether t is a known account type.
func ValidUserType(t string) bool {
	return t == UserTypeEntrepreneur || t == UserTypeInvestor
}

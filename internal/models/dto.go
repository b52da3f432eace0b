package models

import "time"

// MemberDTO is the flat API representation of a Member, carrying the
// denormalized membership type name.
type MemberDTO struct {
	ID                 uint      `json:"id"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	Email              string    `json:"email"`
	PhoneNumber        string    `json:"phoneNumber"`
	JoinDate           time.Time `json:"joinDate"`
	MembershipTypeID   uint      `json:"membershipTypeId"`
	MembershipTypeName string    `json:"membershipTypeName"`
}

// TokenResponse is returned by login and register. Only the token itself
// is trusted for authorization; email/roles/expiration are a plaintext
// summary for client display.
type TokenResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
	Email      string    `json:"email"`
	Roles      []string  `json:"roles"`
}

// DashboardStats is the role-dependent dashboard payload: admins get
// aggregate counts, regular users get their own profile state.
type DashboardStats struct {
	TotalMembers         *int64     `json:"totalMembers,omitempty"`
	TotalTrainers        *int64     `json:"totalTrainers,omitempty"`
	TotalMembershipTypes *int64     `json:"totalMembershipTypes,omitempty"`
	MyProfile            *MemberDTO `json:"myProfile,omitempty"`
	IsProfileComplete    *bool      `json:"isProfileComplete,omitempty"`
}

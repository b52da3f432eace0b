package models

import "time"

// Member represents a gym member. The email is a soft link to a User
// identity; there is no foreign key between the two.
type Member struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	FirstName        string          `gorm:"not null" json:"firstName"`
	LastName         string          `gorm:"not null" json:"lastName"`
	Email            string          `json:"email"`
	PhoneNumber      string          `json:"phoneNumber"`
	JoinDate         time.Time       `json:"joinDate"`
	MembershipTypeID uint            `json:"membershipTypeId"`
	MembershipType   *MembershipType `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// ToDTO flattens the member into its API shape, denormalizing the
// membership type name when the association is loaded.
func (m *Member) ToDTO() MemberDTO {
	dto := MemberDTO{
		ID:               m.ID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		PhoneNumber:      m.PhoneNumber,
		JoinDate:         m.JoinDate,
		MembershipTypeID: m.MembershipTypeID,
	}
	if m.MembershipType != nil {
		dto.MembershipTypeName = m.MembershipType.Name
	}
	return dto
}

package models

// MembershipType is a plan offered by the gym (e.g. Gold, Silver).
// Deleting a membership type cascades to the members referencing it.
type MembershipType struct {
	ID               uint     `gorm:"primaryKey" json:"id"`
	Name             string   `gorm:"not null" json:"name"`
	Cost             int      `json:"cost"`
	DurationInMonths int      `json:"durationInMonths"`
	Members          []Member `gorm:"foreignKey:MembershipTypeID" json:"-"`
}

package models

// Trainer represents a gym trainer. Trainers have no relationships to
// other entities.
type Trainer struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Specialty string `json:"specialty"`
}

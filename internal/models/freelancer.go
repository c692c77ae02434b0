package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Freelancer is the business profile of the signed-in user.
// There is at most one profile per user; it is created on first profile save.
type Freelancer struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// UserID is the owning identity, used to scope every read and write.
	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Address string `gorm:"size:500;not null" json:"address"`
	Phone   string `gorm:"size:50" json:"phone,omitempty"`
	Website string `gorm:"size:255" json:"website,omitempty"`

	Clients  []Client  `gorm:"foreignKey:FreelancerID;constraint:OnDelete:CASCADE" json:"clients,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:FreelancerID;constraint:OnDelete:CASCADE" json:"invoices,omitempty"`
}

func (f *Freelancer) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// GetOwnerID implements the Ownable interface for authorization scoping.
func (f *Freelancer) GetOwnerID() string {
	return f.UserID
}

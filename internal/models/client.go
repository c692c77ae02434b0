package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ownable is implemented by models that belong to an owner, enabling
// ownership-based authorization checks without knowing the concrete type.
type Ownable interface {
	GetOwnerID() string
}

// Client represents a company or person the freelancer bills.
type Client struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// FreelancerID is the owner of this client.
	FreelancerID string `gorm:"type:uuid;index;not null" json:"freelancer_id"`

	CompanyName string `gorm:"size:255;not null" json:"company_name"`
	ContactName string `gorm:"size:255" json:"contact_name,omitempty"`
	Email       string `gorm:"size:255;not null" json:"email"`
	Address     string `gorm:"size:500" json:"address,omitempty"`
	Phone       string `gorm:"size:50" json:"phone,omitempty"`

	// Invoices reference the client but are not deleted with it at the
	// service layer; the SQL schema cascades at the database level.
	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"invoices,omitempty"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// GetOwnerID implements the Ownable interface for authorization scoping.
func (c *Client) GetOwnerID() string {
	return c.FreelancerID
}

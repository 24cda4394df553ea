package models

import (
	"time"

	"gorm.io/gorm"
)

// Machine type values.
const (
	MachineTypeLaser   = "laser"
	MachineTypeBending = "bending"
	MachineTypePunch   = "punch"
)

// Machine represents a production machine in the external registry. The
// engine only reads machines; inventory management belongs to the registry
// collaborator.
type Machine struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	SupplierID uint           `gorm:"not null;index" json:"supplier_id"`
	Supplier   Supplier       `gorm:"foreignKey:SupplierID" json:"supplier"`
	Name       string         `gorm:"not null" json:"name"`
	Type       string         `gorm:"not null;default:'laser'" json:"type"` // laser, bending, punch
	Make       string         `json:"make"`
	Capacity   string         `json:"capacity"`   // laser
	BedSize    string         `json:"bed_size"`   // laser, punch
	Tonnage    string         `json:"tonnage"`    // bending, punch
	BedLength  string         `json:"bed_length"` // bending
	PhotoS3Key *string        `json:"photo_s3_key"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Machine model
func (Machine) TableName() string {
	return "machines"
}

// Supplier represents the owner of one or more machines.
type Supplier struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	ContactInfo string         `gorm:"type:text" json:"contact_info"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	Address     string         `gorm:"type:text" json:"address"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Order represents one custom manufacturing request and its full
// negotiation/production history.
type Order struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	PartID string `gorm:"size:32;uniqueIndex;not null" json:"part_id"` // external part identifier, immutable

	RequesterID uint `gorm:"not null;index" json:"requester_id"` // foreign key to users table
	Requester   User `gorm:"foreignKey:RequesterID" json:"requester"`

	// Part details, set at submission and never changed by the engine
	ProductDescription string   `gorm:"type:text;not null" json:"product_description"`
	Quantity           int      `gorm:"not null;check:quantity > 0" json:"quantity"`
	MaterialType       string   `gorm:"not null" json:"material_type"`
	MaterialGrade      string   `json:"material_grade"`
	MaterialThickness  string   `json:"material_thickness"`
	SurfaceTreatment   string   `json:"surface_treatment"`
	PackingStandard    string   `json:"packing_standard"`
	TargetPrice        *float64 `json:"target_price"` // nullable, requester's proposed price

	// Artifact references, opaque keys owned by the storage collaborator
	StepFileS3Key    *string `json:"step_file_s3_key"`
	DraftDesignS3Key *string `json:"draft_design_s3_key"`

	Status OrderStatus `gorm:"not null;default:'under_review'" json:"status"`

	// Pricing fields
	PriceEstimate *float64 `json:"price_estimate"` // nullable, reviewer's baseline
	AgreedPrice   *float64 `json:"agreed_price"`   // nullable, set once when an offer is accepted
	ActualCost    *float64 `json:"actual_cost"`    // nullable, recorded at completion

	// Denormalized pointer to the latest counter-offer message, maintained
	// in the same transaction as each counter-offer append. The message log
	// stays the audit trail; this is the hot read path.
	CurrentOfferID *uint    `gorm:"index" json:"current_offer_id,omitempty"`
	CurrentOffer   *Message `gorm:"foreignKey:CurrentOfferID" json:"current_offer,omitempty"`

	// Terminal annotations
	RejectionReason  *string `json:"rejection_reason"`
	PaymentConfirmed bool    `gorm:"not null;default:false" json:"payment_confirmed"`
	AdminNotes       string  `gorm:"type:text" json:"admin_notes"`

	// Assignment fields, meaningful once accepted
	MachineID              *uint      `gorm:"index" json:"machine_id"`
	Machine                *Machine   `gorm:"foreignKey:MachineID" json:"machine,omitempty"`
	ExpectedCompletionDate *time.Time `json:"expected_completion_date"`

	// Status-change timestamps for dashboard display
	DateAccepted          *time.Time `json:"date_accepted"`
	DateProductionStarted *time.Time `json:"date_production_started"`
	DateCompleted         *time.Time `json:"date_completed"`
	DateRejected          *time.Time `json:"date_rejected"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsParticipant reports whether the user takes part in this order's
// negotiation: the owning requester, or any reviewer.
func (o *Order) IsParticipant(user *User) bool {
	switch user.Role {
	case RoleRequester:
		return o.RequesterID == user.ID
	case RoleReviewer:
		return true
	}
	return false
}

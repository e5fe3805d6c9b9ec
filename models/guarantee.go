package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuaranteeStatus string

const (
	GuaranteeActive   GuaranteeStatus = "active"
	GuaranteeInactive GuaranteeStatus = "inactive"
)

func IsValidGuaranteeStatus(s GuaranteeStatus) bool {
	return s == GuaranteeActive || s == GuaranteeInactive
}

// Fixed guarantee terms offered by the business.
var GuaranteeTypes = []string{
	"2 سنوات",
	"3 سنوات",
	"5 سنوات",
	"8 سنوات",
	"10 سنوات",
}

// Guarantee is a time-bounded warranty. It is normally attached to one
// service line item; entries with a nil ServiceItemID belong to the
// older workflow that kept a guarantee list directly on the order.
//
// New guarantees start inactive and unaccepted. Acceptance and status
// are coupled: toggling acceptance rewrites status in the same update.
type Guarantee struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"orderId"`
	ServiceItemID *uuid.UUID `gorm:"type:uuid;index" json:"serviceItemId,omitempty"`

	TypeGuarantee string    `json:"typeGuarantee,omitempty"`
	StartDate     time.Time `gorm:"not null" json:"startDate"`
	EndDate       time.Time `gorm:"not null" json:"endDate"`
	Terms         string    `json:"terms,omitempty"`
	Notes         string    `json:"notes,omitempty"`

	Status   GuaranteeStatus `gorm:"type:varchar(10);default:'inactive'" json:"status"`
	Accepted bool            `gorm:"default:false" json:"accepted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Guarantee) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Status == "" {
		g.Status = GuaranteeInactive
	}
	return
}

// ActiveAt reports whether the guarantee window covers the instant.
func (g *Guarantee) ActiveAt(t time.Time) bool {
	return !g.StartDate.After(t) && !g.EndDate.Before(t)
}

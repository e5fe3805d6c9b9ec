package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkOrder is one unit of vehicle service work for a customer. Orders
// with line items always carry all six car fields; a zero-item order is
// tolerated as a legacy shape only.
type WorkOrder struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	CarType         string `json:"carType"`
	CarModel        string `json:"carModel"`
	CarColor        string `json:"carColor"`
	CarPlateNumber  string `json:"carPlateNumber"`
	CarManufacturer string `json:"carManufacturer"`
	CarSize         string `json:"carSize"`

	Services []ServiceItem `gorm:"foreignKey:OrderID" json:"services,omitempty"`

	// Guarantees holds the standalone entries of the older workflow
	// (ServiceItemID nil). Line-item guarantees hang off their service
	// items; loaders scope this list so they never appear here too.
	Guarantees []Guarantee `gorm:"foreignKey:OrderID" json:"guarantees,omitempty"`

	// Back-reference set after the invoice is generated; the link is a
	// second, non-atomic write and may lag behind invoice creation.
	InvoiceID *uuid.UUID `gorm:"type:uuid" json:"invoiceId,omitempty"`

	Notes     string `json:"notes,omitempty"`
	IsDeleted bool   `gorm:"default:false" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *WorkOrder) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// HasActiveGuarantee reports whether any guarantee on the order,
// standalone or line-item, covers the given instant.
func (o *WorkOrder) HasActiveGuarantee(now time.Time) bool {
	for _, g := range o.Guarantees {
		if g.ActiveAt(now) {
			return true
		}
	}
	for _, s := range o.Services {
		if s.Guarantee != nil && s.Guarantee.ActiveAt(now) {
			return true
		}
	}
	return false
}

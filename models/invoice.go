package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusVoid    = "void"
)

// Invoice is derived from exactly one work order. Amounts are stored as
// fixed-point decimals; tax and totals are rounded half away from zero
// to two places at generation time.
type Invoice struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"orderId"`

	InvoiceNumber string    `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	IssueDate     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"issueDate"`

	// Snapshot of customer/car data at issue time.
	CustomerName   string `json:"customerName"`
	Phone          string `json:"phone"`
	CarType        string `json:"carType"`
	CarModel       string `json:"carModel"`
	CarPlateNumber string `json:"carPlateNumber"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"taxRate"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"taxAmount"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	Discount    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discount"`
	FinalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"finalAmount"`

	Notes     string `json:"notes,omitempty"`
	Status    string `gorm:"type:varchar(20);default:'pending'" json:"status"`
	IsDeleted bool   `gorm:"default:false" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = InvoiceStatusPending
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Steps of the intake workflow, in execution order.
const (
	StepCustomer    = "customer"
	StepOrder       = "order"
	StepInvoice     = "invoice"
	StepLinkInvoice = "link_invoice"
)

const (
	StepOK     = "ok"
	StepFailed = "failed"
)

// IntakeLog is the durable per-step record of one intake request. The
// workflow spans three independent writes plus a back-link and is not
// atomic; these rows let a reconciler repair partial completions
// instead of hiding them behind a rollback.
type IntakeLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RequestID uuid.UUID  `gorm:"type:uuid;index;not null" json:"requestId"`
	Step      string     `gorm:"type:varchar(20);not null" json:"step"`
	Status    string     `gorm:"type:varchar(10);not null" json:"status"`
	EntityID  *uuid.UUID `gorm:"type:uuid" json:"entityId,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (l *IntakeLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceType is the closed set of sellable service variants.
type ServiceType string

const (
	ServicePolish     ServiceType = "polish"
	ServiceProtection ServiceType = "protection"
	ServiceInsulator  ServiceType = "insulator"
	ServiceAdditions  ServiceType = "additions"
)

func IsValidServiceType(t ServiceType) bool {
	switch t {
	case ServicePolish, ServiceProtection, ServiceInsulator, ServiceAdditions:
		return true
	}
	return false
}

// Closed attribute sets per variant. Normalization rejects values
// outside these and drops attributes that belong to another variant.
var (
	PolishTypes         = []string{"external", "internal", "seats", "piece", "water_polish"}
	PolishSubTypes      = []string{"1", "2", "3"}
	ProtectionFinishes  = []string{"glossy", "matte", "colored"}
	ProtectionSizes     = []string{"10", "8", "7.5", "6.5"}
	ProtectionCoverages = []string{"full", "half", "quarter", "edges", "other"}
	InsulatorTypes      = []string{"ceramic", "carbon", "crystal"}
	InsulatorCoverages  = []string{"full", "half", "piece", "shield", "external"}
	AdditionTypes       = []string{"detailed_wash", "premium_wash", "leather_pedals", "blackout", "nano_interior_decor", "nano_interior_seats"}
	WashScopes          = []string{"full", "external_only", "internal_only", "engine"}
)

// ServiceItem is one purchased service inside a work order. Only the
// attribute group matching ServiceType is ever populated.
type ServiceItem struct {
	ID      uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID   `gorm:"type:uuid;index;not null" json:"orderId"`
	Type    ServiceType `gorm:"column:service_type;type:varchar(20);not null" json:"serviceType"`

	Price       decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	DealDetails string          `json:"dealDetails,omitempty"`
	ServiceDate *time.Time      `json:"serviceDate,omitempty"`

	// polish
	PolishType    string `json:"polishType,omitempty"`
	PolishSubType string `json:"polishSubType,omitempty"`

	// protection
	ProtectionFinish   string `json:"protectionFinish,omitempty"`
	ProtectionSize     string `json:"protectionSize,omitempty"`
	ProtectionCoverage string `json:"protectionCoverage,omitempty"`
	ProtectionColor    string `json:"protectionColor,omitempty"`
	OriginalCarColor   string `json:"originalCarColor,omitempty"`

	// insulator
	InsulatorType     string `json:"insulatorType,omitempty"`
	InsulatorCoverage string `json:"insulatorCoverage,omitempty"`

	// additions
	AdditionType string `json:"additionType,omitempty"`
	WashScope    string `json:"washScope,omitempty"`

	Guarantee *Guarantee `gorm:"foreignKey:ServiceItemID" json:"guarantee,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (s *ServiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

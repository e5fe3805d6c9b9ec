package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client classification.
const (
	ClientTypeIndividual = "individual"
	ClientTypeCompany    = "company"
)

// Branches the business operates. The set is closed; reporting filters
// match against these values case-insensitively.
const (
	BranchObhur   = "عملاء فرع ابحر"
	BranchMadinah = "عملاء فرع المدينة"
	BranchOther   = "اخرى"
)

var Branches = []string{BranchObhur, BranchMadinah, BranchOther}

func IsValidBranch(branch string) bool {
	for _, b := range Branches {
		if strings.EqualFold(b, branch) {
			return true
		}
	}
	return false
}

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	FirstName  string `gorm:"not null" json:"firstName"`
	MiddleName string `gorm:"not null" json:"middleName"`
	LastName   string `gorm:"not null" json:"lastName"`
	Email      string `gorm:"index" json:"email,omitempty"`
	Phone      string `gorm:"not null;uniqueIndex" json:"phone"`
	ClientType string `gorm:"type:varchar(20);default:'individual'" json:"clientType"`
	Branch     string `gorm:"not null" json:"branch"`
	Company    string `json:"company,omitempty"`
	Address    string `json:"address,omitempty"`

	// Customers are never hard-deleted.
	IsDeleted bool `gorm:"default:false" json:"-"`

	Orders []WorkOrder `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// FullName joins the three name parts with single spaces; reporting
// searches against this form as well as each part.
func (c *Customer) FullName() string {
	return strings.Join([]string{c.FirstName, c.MiddleName, c.LastName}, " ")
}

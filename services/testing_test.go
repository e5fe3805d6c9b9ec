package services

import (
	"fmt"
	"testing"
	"time"

	"carcare-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testTimeout = 5 * time.Second

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Customer{},
		&models.WorkOrder{},
		&models.ServiceItem{},
		&models.Guarantee{},
		&models.Invoice{},
		&models.IntakeLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newInvoiceService(db *gorm.DB) *InvoiceService {
	return NewInvoiceService(db, decimal.NewFromInt(15), decimal.Zero, testTimeout)
}

func newIntakeService(db *gorm.DB) *IntakeService {
	return NewIntakeService(db, newInvoiceService(db), testTimeout)
}

// intakeFixture is the minimal customer-only request.
func intakeFixture() IntakeInput {
	return IntakeInput{
		FirstName:  "أحمد",
		MiddleName: "علي",
		LastName:   "الغامدي",
		Phone:      "0512345678",
		ClientType: models.ClientTypeIndividual,
		Branch:     models.BranchOther,
	}
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// withCarAndService adds a complete car block and one protection line
// item with a one year guarantee.
func withCarAndService(in IntakeInput, price string) IntakeInput {
	in.CarType = "سيدان"
	in.CarModel = "كامري 2023"
	in.CarColor = "أبيض"
	in.CarPlateNumber = "أ ب ج 1234"
	in.CarManufacturer = "تويوتا"
	in.CarSize = "متوسط"
	in.Services = []ServiceItemInput{{
		ServiceType: string(models.ServiceProtection),
		Price:       decimalPtr(price),
		Protection:  &ProtectionInput{Finish: "glossy", Coverage: "full"},
		Guarantee: &GuaranteeInput{
			TypeGuarantee: "2 سنوات",
			StartDate:     time.Now().Format("2006-01-02"),
			EndDate:       time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
		},
	}}
	return in
}

// seedOrderWithGuarantee creates a customer and an order holding one
// service line item with an unaccepted, inactive guarantee.
func seedOrderWithGuarantee(t *testing.T, db *gorm.DB) (*models.Customer, *models.WorkOrder, *models.Guarantee) {
	t.Helper()
	customer := models.Customer{
		FirstName:  "سعد",
		MiddleName: "محمد",
		LastName:   "القحطاني",
		Phone:      "0598765432",
		ClientType: models.ClientTypeIndividual,
		Branch:     models.BranchObhur,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	orderID := uuid.New()
	itemID := uuid.New()
	guarantee := models.Guarantee{
		ID:            uuid.New(),
		OrderID:       orderID,
		ServiceItemID: &itemID,
		TypeGuarantee: "3 سنوات",
		StartDate:     time.Now(),
		EndDate:       time.Now().AddDate(3, 0, 0),
		Status:        models.GuaranteeInactive,
	}
	order := models.WorkOrder{
		ID:              orderID,
		CustomerID:      customer.ID,
		CarType:         "دفع رباعي",
		CarModel:        "لاند كروزر",
		CarColor:        "أسود",
		CarPlateNumber:  "د هـ و 5678",
		CarManufacturer: "تويوتا",
		CarSize:         "كبير",
		Services: []models.ServiceItem{{
			ID:        itemID,
			OrderID:   orderID,
			Type:      models.ServiceInsulator,
			Price:     decimal.NewFromInt(500),
			Guarantee: &guarantee,
		}},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return &customer, &order, &guarantee
}

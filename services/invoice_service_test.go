package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"carcare-backend/models"
	"carcare-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoiceArithmetic(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvoiceService(db)
	customer, order, _ := seedOrderWithGuarantee(t, db)

	order.Services = append(order.Services, models.ServiceItem{
		ID:      uuid.New(),
		OrderID: order.ID,
		Type:    models.ServicePolish,
		Price:   decimal.RequireFromString("250.50"),
	})

	// 750.50 * 15% = 112.575, rounded half away from zero to 112.58.
	invoice, err := svc.Generate(context.Background(), customer, order, nil, "")
	require.NoError(t, err)

	assert.Equal(t, "750.50", invoice.Subtotal.StringFixed(2))
	assert.Equal(t, "15", invoice.TaxRate.String())
	assert.Equal(t, "112.58", invoice.TaxAmount.StringFixed(2))
	assert.Equal(t, "863.08", invoice.TotalAmount.StringFixed(2))
	assert.Equal(t, "0.00", invoice.Discount.StringFixed(2))
	assert.Equal(t, "863.08", invoice.FinalAmount.StringFixed(2))
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)

	// Denormalized customer and car snapshot.
	assert.Equal(t, customer.FullName(), invoice.CustomerName)
	assert.Equal(t, customer.Phone, invoice.Phone)
	assert.Equal(t, order.CarPlateNumber, invoice.CarPlateNumber)
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "INV-"+time.Now().Format("20060102")+"-"))
}

func TestGenerateInvoiceRateOverride(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvoiceService(db)
	customer, order, _ := seedOrderWithGuarantee(t, db)

	rate := decimal.NewFromInt(5)
	invoice, err := svc.Generate(context.Background(), customer, order, &rate, "")
	require.NoError(t, err)
	assert.Equal(t, "25.00", invoice.TaxAmount.StringFixed(2))
	assert.Equal(t, "525.00", invoice.TotalAmount.StringFixed(2))
}

func TestGenerateInvoiceZeroRate(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvoiceService(db)
	customer, order, _ := seedOrderWithGuarantee(t, db)

	rate := decimal.Zero
	invoice, err := svc.Generate(context.Background(), customer, order, &rate, "")
	require.NoError(t, err)
	assert.Equal(t, "0.00", invoice.TaxAmount.StringFixed(2))
	assert.Equal(t, "500.00", invoice.TotalAmount.StringFixed(2))
}

func TestGenerateInvoiceRejectsNegativeRate(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvoiceService(db)
	customer, order, _ := seedOrderWithGuarantee(t, db)

	rate := decimal.NewFromInt(-1)
	_, err := svc.Generate(context.Background(), customer, order, &rate, "")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestGenerateInvoiceSubstitutesDefaultPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db, decimal.NewFromInt(15), decimal.NewFromInt(80), testTimeout)
	customer, order, _ := seedOrderWithGuarantee(t, db)

	order.Services[0].Price = decimal.Zero
	rate := decimal.Zero
	invoice, err := svc.Generate(context.Background(), customer, order, &rate, "")
	require.NoError(t, err)
	assert.Equal(t, "80.00", invoice.Subtotal.StringFixed(2))
}

func TestGenerateInvoiceConflictsOnSecondInvoice(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvoiceService(db)
	customer, order, _ := seedOrderWithGuarantee(t, db)

	_, err := svc.Generate(context.Background(), customer, order, nil, "")
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), customer, order, nil, "")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConflict))
}

func TestLinkOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvoiceService(db)
	customer, order, _ := seedOrderWithGuarantee(t, db)

	invoice, err := svc.Generate(context.Background(), customer, order, nil, "")
	require.NoError(t, err)
	require.NoError(t, svc.LinkOrder(context.Background(), order, invoice))

	var stored models.WorkOrder
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	require.NotNil(t, stored.InvoiceID)
	assert.Equal(t, invoice.ID, *stored.InvoiceID)
}

func TestLinkOrderMissingOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvoiceService(db)

	order := &models.WorkOrder{ID: uuid.New()}
	invoice := &models.Invoice{ID: uuid.New()}
	err := svc.LinkOrder(context.Background(), order, invoice)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestGetInvoiceByOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvoiceService(db)
	customer, order, _ := seedOrderWithGuarantee(t, db)

	created, err := svc.Generate(context.Background(), customer, order, nil, "")
	require.NoError(t, err)

	fetched, err := svc.GetByOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	_, err = svc.GetByOrder(context.Background(), uuid.New())
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

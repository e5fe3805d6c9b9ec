package services

import (
	"context"
	"errors"
	"time"

	"carcare-backend/models"
	"carcare-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

// InvoiceService derives an invoice from a work order's line items and
// maintains the order → invoice back-link.
type InvoiceService struct {
	db           *gorm.DB
	defaultRate  decimal.Decimal
	defaultPrice decimal.Decimal
	timeout      time.Duration
}

func NewInvoiceService(db *gorm.DB, defaultRate, defaultPrice decimal.Decimal, timeout time.Duration) *InvoiceService {
	return &InvoiceService{db: db, defaultRate: defaultRate, defaultPrice: defaultPrice, timeout: timeout}
}

// Generate computes the money columns and persists the invoice. The
// caller is responsible for the separate back-link step (LinkOrder) and
// must not roll the order back when generation fails.
//
// Rounding rule: tax amount is rounded half away from zero to two
// decimal places; subtotal and totals are already two-place decimals.
func (s *InvoiceService) Generate(ctx context.Context, customer *models.Customer, order *models.WorkOrder, taxRate *decimal.Decimal, notes string) (*models.Invoice, error) {
	rate := s.defaultRate
	if taxRate != nil {
		rate = *taxRate
	}
	if rate.IsNegative() {
		return nil, utils.NewValidationError("tax rate must not be negative")
	}

	subtotal := decimal.Zero
	for _, item := range order.Services {
		price := item.Price
		if price.IsZero() {
			price = s.defaultPrice
		}
		subtotal = subtotal.Add(price)
	}
	subtotal = subtotal.Round(2)

	taxAmount := subtotal.Mul(rate).Div(oneHundred).Round(2)
	total := subtotal.Add(taxAmount)
	discount := decimal.Zero
	final := total.Sub(discount)

	now := time.Now()
	invoice := &models.Invoice{
		CustomerID:     customer.ID,
		OrderID:        order.ID,
		InvoiceNumber:  "INV-" + now.Format("20060102") + "-" + utils.GenerateRandomString(6),
		IssueDate:      now,
		CustomerName:   customer.FullName(),
		Phone:          customer.Phone,
		CarType:        order.CarType,
		CarModel:       order.CarModel,
		CarPlateNumber: order.CarPlateNumber,
		Subtotal:       subtotal,
		TaxRate:        rate,
		TaxAmount:      taxAmount,
		TotalAmount:    total,
		Discount:       discount,
		FinalAmount:    final,
		Notes:          notes,
		Status:         models.InvoiceStatusPending,
	}

	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	if err := s.db.WithContext(cctx).Create(invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewConflictError("Invoice already exists for this order")
		}
		return nil, utils.NewInternalError("failed to create invoice", err)
	}
	return invoice, nil
}

// LinkOrder writes the invoice id back onto the order. This is the
// second, non-atomic half of invoice generation; when it fails the
// invoice stays valid and the reconciler repairs the link later.
func (s *InvoiceService) LinkOrder(ctx context.Context, order *models.WorkOrder, invoice *models.Invoice) error {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	res := s.db.WithContext(cctx).Model(&models.WorkOrder{}).
		Where("id = ?", order.ID).
		Update("invoice_id", invoice.ID)
	if res.Error != nil {
		return utils.NewInternalError("failed to link invoice to order", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("Order not found")
	}
	order.InvoiceID = &invoice.ID
	return nil
}

func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	var invoices []models.Invoice
	err := s.db.WithContext(cctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, utils.NewInternalError("failed to list invoices", err)
	}
	return invoices, nil
}

func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	var invoice models.Invoice
	err := s.db.WithContext(cctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Invoice not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to fetch invoice", err)
	}
	return &invoice, nil
}

func (s *InvoiceService) GetByOrder(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	var invoice models.Invoice
	err := s.db.WithContext(cctx).
		Where("order_id = ? AND is_deleted = ?", orderID, false).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Invoice not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to fetch invoice", err)
	}
	return &invoice, nil
}

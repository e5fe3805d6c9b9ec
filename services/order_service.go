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

// OrderInput opens a work order for an already-registered customer.
// Unlike intake, the car block is unconditionally required here.
type OrderInput struct {
	CarType         string `json:"carType" binding:"required"`
	CarModel        string `json:"carModel" binding:"required"`
	CarColor        string `json:"carColor" binding:"required"`
	CarPlateNumber  string `json:"carPlateNumber" binding:"required"`
	CarManufacturer string `json:"carManufacturer" binding:"required"`
	CarSize         string `json:"carSize" binding:"required"`

	Services []ServiceItemInput `json:"services" binding:"required"`

	TaxRate      *decimal.Decimal `json:"taxRate"`
	Notes        string           `json:"notes"`
	InvoiceNotes string           `json:"invoiceNotes"`
}

type OrderService struct {
	db       *gorm.DB
	invoices *InvoiceService
	timeout  time.Duration
}

func NewOrderService(db *gorm.DB, invoices *InvoiceService, timeout time.Duration) *OrderService {
	return &OrderService{db: db, invoices: invoices, timeout: timeout}
}

// CreateForCustomer builds the order and derives its invoice. Invoice
// failure is surfaced alongside the created order, never by deleting
// it.
func (s *OrderService) CreateForCustomer(ctx context.Context, customerID uuid.UUID, in OrderInput) (*models.WorkOrder, *models.Invoice, error) {
	if in.CarType == "" || in.CarModel == "" || in.CarColor == "" ||
		in.CarPlateNumber == "" || in.CarManufacturer == "" || in.CarSize == "" {
		return nil, nil, utils.NewValidationError("all car fields are required")
	}
	if len(in.Services) == 0 {
		return nil, nil, utils.NewValidationError("at least one service is required")
	}
	items, err := normalizeServiceItems(in.Services)
	if err != nil {
		return nil, nil, err
	}

	customer, err := s.getCustomer(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}

	order := &models.WorkOrder{
		ID:              uuid.New(),
		CustomerID:      customer.ID,
		CarType:         in.CarType,
		CarModel:        in.CarModel,
		CarColor:        in.CarColor,
		CarPlateNumber:  in.CarPlateNumber,
		CarManufacturer: in.CarManufacturer,
		CarSize:         in.CarSize,
		Notes:           in.Notes,
	}
	assignOrder(order.ID, items)
	order.Services = items

	cctx, cancel := storeCtx(ctx, s.timeout)
	if err := s.db.WithContext(cctx).Create(order).Error; err != nil {
		cancel()
		return nil, nil, utils.NewInternalError("failed to create order", err)
	}
	cancel()

	invoice, err := s.invoices.Generate(ctx, customer, order, in.TaxRate, in.InvoiceNotes)
	if err != nil {
		return order, nil, err
	}
	if err := s.invoices.LinkOrder(ctx, order, invoice); err != nil {
		return order, invoice, err
	}
	return order, invoice, nil
}

// AddServices appends normalized line items to an existing order and
// returns the refreshed order plus the number of items added.
func (s *OrderService) AddServices(ctx context.Context, orderID uuid.UUID, inputs []ServiceItemInput) (*models.WorkOrder, int, error) {
	if len(inputs) == 0 {
		return nil, 0, utils.NewValidationError("at least one service is required")
	}
	items, err := normalizeServiceItems(inputs)
	if err != nil {
		return nil, 0, err
	}

	if err := s.ensureOrder(ctx, orderID); err != nil {
		return nil, 0, err
	}

	assignOrder(orderID, items)
	cctx, cancel := storeCtx(ctx, s.timeout)
	if err := s.db.WithContext(cctx).Create(&items).Error; err != nil {
		cancel()
		return nil, 0, utils.NewInternalError("failed to add services", err)
	}
	cancel()

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, 0, err
	}
	return order, len(items), nil
}

func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (*models.WorkOrder, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	var order models.WorkOrder
	err := s.db.WithContext(cctx).
		Preload("Services").
		Preload("Services.Guarantee").
		Preload("Guarantees", standaloneGuarantees).
		Where("id = ? AND is_deleted = ?", orderID, false).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Order not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to fetch order", err)
	}
	return &order, nil
}

// List returns non-deleted orders, optionally restricted to one
// customer, newest first.
func (s *OrderService) List(ctx context.Context, customerID *uuid.UUID) ([]models.WorkOrder, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	q := s.db.WithContext(cctx).
		Preload("Services").
		Preload("Services.Guarantee").
		Preload("Guarantees", standaloneGuarantees).
		Where("is_deleted = ?", false).
		Order("created_at DESC")
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}
	var orders []models.WorkOrder
	if err := q.Find(&orders).Error; err != nil {
		return nil, utils.NewInternalError("failed to list orders", err)
	}
	return orders, nil
}

// SoftDelete flips the deletion flag; the order and its history remain.
func (s *OrderService) SoftDelete(ctx context.Context, orderID uuid.UUID) error {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	res := s.db.WithContext(cctx).Model(&models.WorkOrder{}).
		Where("id = ? AND is_deleted = ?", orderID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return utils.NewInternalError("failed to delete order", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("Order not found")
	}
	return nil
}

func (s *OrderService) getCustomer(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	var customer models.Customer
	err := s.db.WithContext(cctx).
		Where("id = ? AND is_deleted = ?", customerID, false).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Client not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to fetch customer", err)
	}
	return &customer, nil
}

func (s *OrderService) ensureOrder(ctx context.Context, orderID uuid.UUID) error {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	var order models.WorkOrder
	err := s.db.WithContext(cctx).
		Select("id").
		Where("id = ? AND is_deleted = ?", orderID, false).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewNotFoundError("Order not found")
	}
	if err != nil {
		return utils.NewInternalError("failed to look up order", err)
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"log"
	"time"

	"carcare-backend/models"
	"carcare-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IntakeInput is the combined register-customer / open-order request.
// Car fields and services are optional as a pair: an order is opened
// only when all six car fields and at least one service are present.
type IntakeInput struct {
	FirstName  string `json:"firstName" binding:"required"`
	MiddleName string `json:"middleName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email"`
	Phone      string `json:"phone" binding:"required"`
	ClientType string `json:"clientType"`
	Branch     string `json:"branch" binding:"required"`
	Company    string `json:"company"`
	Address    string `json:"address"`

	CarType         string `json:"carType"`
	CarModel        string `json:"carModel"`
	CarColor        string `json:"carColor"`
	CarPlateNumber  string `json:"carPlateNumber"`
	CarManufacturer string `json:"carManufacturer"`
	CarSize         string `json:"carSize"`

	Services []ServiceItemInput `json:"services"`

	TaxRate      *decimal.Decimal `json:"taxRate"`
	InvoiceNotes string           `json:"invoiceNotes"`
	Notes        string           `json:"notes"`
}

// StepResult reports the outcome of one intake step.
type StepResult struct {
	Step   string `json:"step"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// IntakeResult carries whatever the workflow managed to produce. On a
// mid-flight failure the entities created so far are still populated so
// the caller sees the partial state instead of a silent inconsistency.
type IntakeResult struct {
	Customer *models.Customer  `json:"customer"`
	Order    *models.WorkOrder `json:"order,omitempty"`
	Invoice  *models.Invoice   `json:"invoice,omitempty"`
	Steps    []StepResult      `json:"steps"`
}

// IntakeService runs the intake workflow: find-or-create customer,
// conditionally build a work order with guaranteed line items, then
// derive and back-link an invoice. The four writes are independent; no
// step is rolled back when a later one fails.
type IntakeService struct {
	db       *gorm.DB
	invoices *InvoiceService
	timeout  time.Duration
}

func NewIntakeService(db *gorm.DB, invoices *InvoiceService, timeout time.Duration) *IntakeService {
	return &IntakeService{db: db, invoices: invoices, timeout: timeout}
}

func (s *IntakeService) Intake(ctx context.Context, in IntakeInput) (*IntakeResult, error) {
	// All input validation happens before the first store access.
	if err := validateIdentity(in); err != nil {
		return nil, err
	}
	buildOrder, err := shouldBuildOrder(in)
	if err != nil {
		return nil, err
	}
	var items []models.ServiceItem
	if buildOrder {
		items, err = normalizeServiceItems(in.Services)
		if err != nil {
			return nil, err
		}
	}

	requestID := uuid.New()
	result := &IntakeResult{}

	customer, err := s.FindOrCreateCustomer(ctx, in)
	s.logStep(ctx, requestID, models.StepCustomer, entityID(customer), err)
	if err != nil {
		return nil, err
	}
	result.Customer = customer
	result.Steps = append(result.Steps, okStep(models.StepCustomer))

	if !buildOrder {
		return result, nil
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

	err = s.createOrder(ctx, order)
	s.logStep(ctx, requestID, models.StepOrder, &order.ID, err)
	if err != nil {
		result.Steps = append(result.Steps, failedStep(models.StepOrder, err))
		return result, err
	}
	result.Order = order
	result.Steps = append(result.Steps, okStep(models.StepOrder))

	invoice, err := s.invoices.Generate(ctx, customer, order, in.TaxRate, in.InvoiceNotes)
	s.logStep(ctx, requestID, models.StepInvoice, entityIDInvoice(invoice), err)
	if err != nil {
		// The order stays; the caller sees the partial result.
		result.Steps = append(result.Steps, failedStep(models.StepInvoice, err))
		return result, err
	}
	result.Invoice = invoice
	result.Steps = append(result.Steps, okStep(models.StepInvoice))

	err = s.invoices.LinkOrder(ctx, order, invoice)
	s.logStep(ctx, requestID, models.StepLinkInvoice, &invoice.ID, err)
	if err != nil {
		// Invoice exists but the order does not point back yet; the
		// reconciler repairs this from the intake log.
		result.Steps = append(result.Steps, failedStep(models.StepLinkInvoice, err))
		return result, err
	}
	result.Steps = append(result.Steps, okStep(models.StepLinkInvoice))

	return result, nil
}

// FindOrCreateCustomer deduplicates by phone. Identity fields on the
// request are ignored when the customer already exists. A concurrent
// create racing on the same new phone loses against the unique index
// and is surfaced as a conflict.
func (s *IntakeService) FindOrCreateCustomer(ctx context.Context, in IntakeInput) (*models.Customer, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	var existing models.Customer
	err := s.db.WithContext(cctx).
		Where("phone = ? AND is_deleted = ?", in.Phone, false).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewInternalError("failed to look up customer", err)
	}

	clientType := in.ClientType
	if clientType == "" {
		clientType = models.ClientTypeIndividual
	}
	customer := models.Customer{
		FirstName:  in.FirstName,
		MiddleName: in.MiddleName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		ClientType: clientType,
		Branch:     in.Branch,
		Company:    in.Company,
		Address:    in.Address,
	}
	if err := s.db.WithContext(cctx).Create(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewConflictError("Customer with this phone already exists")
		}
		return nil, utils.NewInternalError("failed to create customer", err)
	}
	return &customer, nil
}

func (s *IntakeService) createOrder(ctx context.Context, order *models.WorkOrder) error {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	if err := s.db.WithContext(cctx).Create(order).Error; err != nil {
		return utils.NewInternalError("failed to create order", err)
	}
	return nil
}

// logStep records the durable saga entry. Logging failures must never
// fail the request itself.
func (s *IntakeService) logStep(ctx context.Context, requestID uuid.UUID, step string, entity *uuid.UUID, stepErr error) {
	entry := models.IntakeLog{
		RequestID: requestID,
		Step:      step,
		Status:    models.StepOK,
		EntityID:  entity,
	}
	if stepErr != nil {
		entry.Status = models.StepFailed
		entry.Error = stepErr.Error()
	}
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	if err := s.db.WithContext(cctx).Create(&entry).Error; err != nil {
		log.Printf("[WARN] intake %s: failed to record step %s: %v", requestID, step, err)
	}
}

func validateIdentity(in IntakeInput) error {
	if in.FirstName == "" || in.MiddleName == "" || in.LastName == "" {
		return utils.NewValidationError("first, middle and last name are required")
	}
	if !utils.ValidatePhone(in.Phone) {
		return utils.NewValidationError("phone must start with 05 and contain 10 digits")
	}
	if in.Email != "" && !utils.ValidateEmail(in.Email) {
		return utils.NewValidationError("email is not valid")
	}
	if in.ClientType != "" && in.ClientType != models.ClientTypeIndividual && in.ClientType != models.ClientTypeCompany {
		return utils.NewValidationError("client type must be individual or company")
	}
	if !models.IsValidBranch(in.Branch) {
		return utils.NewValidationError("unknown branch: " + in.Branch)
	}
	return nil
}

// shouldBuildOrder applies the decision rule: an order is built iff all
// six car fields are present and at least one service is supplied.
// Services with an incomplete car block are an error; car data with no
// services makes the intake customer-only.
func shouldBuildOrder(in IntakeInput) (bool, error) {
	carFields := []string{in.CarType, in.CarModel, in.CarColor, in.CarPlateNumber, in.CarManufacturer, in.CarSize}
	complete := true
	for _, f := range carFields {
		if f == "" {
			complete = false
			break
		}
	}
	if len(in.Services) == 0 {
		return false, nil
	}
	if !complete {
		return false, utils.NewValidationError("all car fields are required when services are provided")
	}
	return true, nil
}

func okStep(step string) StepResult {
	return StepResult{Step: step, Status: models.StepOK}
}

func failedStep(step string, err error) StepResult {
	return StepResult{Step: step, Status: models.StepFailed, Error: utils.AsAppError(err).Message}
}

func entityID(c *models.Customer) *uuid.UUID {
	if c == nil {
		return nil
	}
	return &c.ID
}

func entityIDInvoice(i *models.Invoice) *uuid.UUID {
	if i == nil {
		return nil
	}
	return &i.ID
}

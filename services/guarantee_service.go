package services

import (
	"context"
	"errors"
	"time"

	"carcare-backend/models"
	"carcare-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuaranteeService owns the guarantee state machine. Every transition
// is a single conditional update scoped by (orderId, guaranteeId), so
// concurrent transitions resolve last-write-wins with no read-modify-
// write race.
type GuaranteeService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGuaranteeService(db *gorm.DB, timeout time.Duration) *GuaranteeService {
	return &GuaranteeService{db: db, timeout: timeout}
}

// SetStatus is the administrative transition: it writes the requested
// status unconditionally and idempotently.
func (s *GuaranteeService) SetStatus(ctx context.Context, orderID, guaranteeID uuid.UUID, status models.GuaranteeStatus) (*models.WorkOrder, error) {
	if !models.IsValidGuaranteeStatus(status) {
		return nil, utils.NewValidationError("status must be active or inactive")
	}
	if err := s.ensureOrder(ctx, orderID); err != nil {
		return nil, err
	}

	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	res := s.db.WithContext(cctx).Model(&models.Guarantee{}).
		Where("id = ? AND order_id = ?", guaranteeID, orderID).
		Update("status", status)
	if res.Error != nil {
		return nil, utils.NewInternalError("failed to update guarantee status", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.NewNotFoundError("Guarantee not found")
	}
	return s.loadOrder(ctx, orderID)
}

// SetAcceptance toggles acceptance and derives the status from it in
// the same single-row update: accepted means active, rejected means
// inactive, regardless of any earlier administrative status write.
func (s *GuaranteeService) SetAcceptance(ctx context.Context, orderID, guaranteeID uuid.UUID, accepted bool) (*models.WorkOrder, error) {
	if err := s.ensureOrder(ctx, orderID); err != nil {
		return nil, err
	}

	status := models.GuaranteeInactive
	if accepted {
		status = models.GuaranteeActive
	}

	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	res := s.db.WithContext(cctx).Model(&models.Guarantee{}).
		Where("id = ? AND order_id = ?", guaranteeID, orderID).
		Updates(map[string]interface{}{
			"accepted": accepted,
			"status":   status,
		})
	if res.Error != nil {
		return nil, utils.NewInternalError("failed to update guarantee acceptance", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.NewNotFoundError("Guarantee not found")
	}
	return s.loadOrder(ctx, orderID)
}

// AddToOrder is the older workflow that attaches a standalone guarantee
// to the order itself. Only future-or-today windows are accepted, so
// the new entry is always created active.
func (s *GuaranteeService) AddToOrder(ctx context.Context, orderID uuid.UUID, in GuaranteeInput) (*models.WorkOrder, error) {
	start, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return nil, utils.NewDateFormatError("start date must be formatted as YYYY-MM-DD")
	}
	end, err := utils.ParseDate(in.EndDate)
	if err != nil {
		return nil, utils.NewDateFormatError("end date must be formatted as YYYY-MM-DD")
	}

	today := utils.BeginningOfDay(time.Now())
	if utils.BeginningOfDay(start).Before(today) {
		return nil, utils.NewValidationError("start date must be today or future")
	}
	if utils.BeginningOfDay(end).Before(today) {
		return nil, utils.NewValidationError("end date must be today or future")
	}
	if !end.After(start) {
		return nil, utils.NewValidationError("end date must be after start date")
	}
	if in.TypeGuarantee == "" || !utils.ContainsString(models.GuaranteeTypes, in.TypeGuarantee) {
		return nil, utils.NewValidationError("unknown guarantee type: " + in.TypeGuarantee)
	}

	if err := s.ensureOrder(ctx, orderID); err != nil {
		return nil, err
	}

	guarantee := models.Guarantee{
		OrderID:       orderID,
		TypeGuarantee: in.TypeGuarantee,
		StartDate:     start,
		EndDate:       end,
		Terms:         in.Terms,
		Notes:         in.Notes,
		Status:        models.GuaranteeActive,
	}
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	if err := s.db.WithContext(cctx).Create(&guarantee).Error; err != nil {
		return nil, utils.NewInternalError("failed to add guarantee", err)
	}
	return s.loadOrder(ctx, orderID)
}

// ensureOrder distinguishes a missing order from a missing guarantee.
func (s *GuaranteeService) ensureOrder(ctx context.Context, orderID uuid.UUID) error {
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

func (s *GuaranteeService) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.WorkOrder, error) {
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
		return nil, utils.NewInternalError("failed to load order", err)
	}
	return &order, nil
}

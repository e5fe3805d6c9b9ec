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

// CustomerUpdateInput carries partial identity updates; nil fields are
// left untouched.
type CustomerUpdateInput struct {
	FirstName  *string `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	ClientType *string `json:"clientType"`
	Branch     *string `json:"branch"`
	Company    *string `json:"company"`
	Address    *string `json:"address"`
}

// CustomerService covers the directory writes outside of intake:
// partial updates and the soft-delete flag flip.
type CustomerService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewCustomerService(db *gorm.DB, timeout time.Duration) *CustomerService {
	return &CustomerService{db: db, timeout: timeout}
}

func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, in CustomerUpdateInput) (*models.Customer, error) {
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

	if in.FirstName != nil {
		customer.FirstName = *in.FirstName
	}
	if in.MiddleName != nil {
		customer.MiddleName = *in.MiddleName
	}
	if in.LastName != nil {
		customer.LastName = *in.LastName
	}
	if in.Email != nil {
		if *in.Email != "" && !utils.ValidateEmail(*in.Email) {
			return nil, utils.NewValidationError("email is not valid")
		}
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		if !utils.ValidatePhone(*in.Phone) {
			return nil, utils.NewValidationError("phone must start with 05 and contain 10 digits")
		}
		customer.Phone = *in.Phone
	}
	if in.ClientType != nil {
		if *in.ClientType != models.ClientTypeIndividual && *in.ClientType != models.ClientTypeCompany {
			return nil, utils.NewValidationError("client type must be individual or company")
		}
		customer.ClientType = *in.ClientType
	}
	if in.Branch != nil {
		if !models.IsValidBranch(*in.Branch) {
			return nil, utils.NewValidationError("unknown branch: " + *in.Branch)
		}
		customer.Branch = *in.Branch
	}
	if in.Company != nil {
		customer.Company = *in.Company
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}

	if err := s.db.WithContext(cctx).Save(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewConflictError("Another customer with this phone already exists")
		}
		return nil, utils.NewInternalError("failed to update customer", err)
	}
	return &customer, nil
}

// SoftDelete marks the customer deleted. Orders are lifecycle
// independent and are not cascaded.
func (s *CustomerService) SoftDelete(ctx context.Context, customerID uuid.UUID) error {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	res := s.db.WithContext(cctx).Model(&models.Customer{}).
		Where("id = ? AND is_deleted = ?", customerID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return utils.NewInternalError("failed to delete customer", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("Client not found")
	}
	return nil
}

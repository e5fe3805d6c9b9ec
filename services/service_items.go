package services

import (
	"context"
	"fmt"
	"time"

	"carcare-backend/models"
	"carcare-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GuaranteeInput carries the guarantee portion of a service line item.
// Dates arrive as calendar-day strings.
type GuaranteeInput struct {
	TypeGuarantee string `json:"typeGuarantee"`
	StartDate     string `json:"startDate" binding:"required"`
	EndDate       string `json:"endDate" binding:"required"`
	Terms         string `json:"terms"`
	Notes         string `json:"notes"`
}

// One typed block per service variant. A request may only populate the
// block matching its serviceType; anything else is rejected instead of
// silently dropped on the way into the store.
type PolishInput struct {
	Type    string `json:"type"`
	SubType string `json:"subType"`
}

type ProtectionInput struct {
	Finish           string `json:"finish"`
	Size             string `json:"size"`
	Coverage         string `json:"coverage"`
	Color            string `json:"color"`
	OriginalCarColor string `json:"originalCarColor"`
}

type InsulatorInput struct {
	Type     string `json:"type"`
	Coverage string `json:"coverage"`
}

type AdditionsInput struct {
	Type      string `json:"type"`
	WashScope string `json:"washScope"`
}

type ServiceItemInput struct {
	ServiceType string           `json:"serviceType" binding:"required"`
	Price       *decimal.Decimal `json:"price"`
	DealDetails string           `json:"dealDetails"`
	ServiceDate string           `json:"serviceDate"`

	Polish     *PolishInput     `json:"polish"`
	Protection *ProtectionInput `json:"protection"`
	Insulator  *InsulatorInput  `json:"insulator"`
	Additions  *AdditionsInput  `json:"additions"`

	Guarantee *GuaranteeInput `json:"guarantee"`
}

// normalizeServiceItems validates and converts every line item, or
// fails the whole batch. IDs and order references are assigned by the
// caller once the owning order id is known.
func normalizeServiceItems(inputs []ServiceItemInput) ([]models.ServiceItem, error) {
	items := make([]models.ServiceItem, 0, len(inputs))
	for i, in := range inputs {
		item, err := normalizeServiceItem(in)
		if err != nil {
			appErr := utils.AsAppError(err)
			appErr.Message = fmt.Sprintf("service %d: %s", i+1, appErr.Message)
			return nil, appErr
		}
		items = append(items, *item)
	}
	return items, nil
}

func normalizeServiceItem(in ServiceItemInput) (*models.ServiceItem, error) {
	serviceType := models.ServiceType(in.ServiceType)
	if !models.IsValidServiceType(serviceType) {
		return nil, utils.NewValidationError("unknown service type: " + in.ServiceType)
	}

	item := models.ServiceItem{
		Type:        serviceType,
		DealDetails: in.DealDetails,
	}
	if in.Price != nil {
		item.Price = *in.Price
		if item.Price.IsNegative() {
			return nil, utils.NewValidationError("price must not be negative")
		}
	}
	if in.ServiceDate != "" {
		d, err := utils.ParseDate(in.ServiceDate)
		if err != nil {
			return nil, utils.NewDateFormatError("service date must be formatted as YYYY-MM-DD")
		}
		item.ServiceDate = &d
	}

	if err := rejectForeignVariants(serviceType, in); err != nil {
		return nil, err
	}

	switch serviceType {
	case models.ServicePolish:
		if in.Polish != nil {
			if err := checkEnum(in.Polish.Type, models.PolishTypes, "polish type"); err != nil {
				return nil, err
			}
			if err := checkEnum(in.Polish.SubType, models.PolishSubTypes, "polish sub type"); err != nil {
				return nil, err
			}
			item.PolishType = in.Polish.Type
			item.PolishSubType = in.Polish.SubType
		}
	case models.ServiceProtection:
		if in.Protection != nil {
			if err := checkEnum(in.Protection.Finish, models.ProtectionFinishes, "protection finish"); err != nil {
				return nil, err
			}
			if err := checkEnum(in.Protection.Size, models.ProtectionSizes, "protection size"); err != nil {
				return nil, err
			}
			if err := checkEnum(in.Protection.Coverage, models.ProtectionCoverages, "protection coverage"); err != nil {
				return nil, err
			}
			item.ProtectionFinish = in.Protection.Finish
			item.ProtectionSize = in.Protection.Size
			item.ProtectionCoverage = in.Protection.Coverage
			item.ProtectionColor = in.Protection.Color
			item.OriginalCarColor = in.Protection.OriginalCarColor
		}
	case models.ServiceInsulator:
		if in.Insulator != nil {
			if err := checkEnum(in.Insulator.Type, models.InsulatorTypes, "insulator type"); err != nil {
				return nil, err
			}
			if err := checkEnum(in.Insulator.Coverage, models.InsulatorCoverages, "insulator coverage"); err != nil {
				return nil, err
			}
			item.InsulatorType = in.Insulator.Type
			item.InsulatorCoverage = in.Insulator.Coverage
		}
	case models.ServiceAdditions:
		if in.Additions != nil {
			if err := checkEnum(in.Additions.Type, models.AdditionTypes, "addition type"); err != nil {
				return nil, err
			}
			if err := checkEnum(in.Additions.WashScope, models.WashScopes, "wash scope"); err != nil {
				return nil, err
			}
			item.AdditionType = in.Additions.Type
			item.WashScope = in.Additions.WashScope
		}
	}

	if in.Guarantee != nil {
		g, err := normalizeGuarantee(*in.Guarantee)
		if err != nil {
			return nil, err
		}
		item.Guarantee = g
	}

	return &item, nil
}

// rejectForeignVariants fails when an attribute block for a different
// variant accompanies the declared service type.
func rejectForeignVariants(t models.ServiceType, in ServiceItemInput) error {
	mismatch := func(block string) error {
		return utils.NewValidationError(block + " attributes do not match service type " + string(t))
	}
	if in.Polish != nil && t != models.ServicePolish {
		return mismatch("polish")
	}
	if in.Protection != nil && t != models.ServiceProtection {
		return mismatch("protection")
	}
	if in.Insulator != nil && t != models.ServiceInsulator {
		return mismatch("insulator")
	}
	if in.Additions != nil && t != models.ServiceAdditions {
		return mismatch("additions")
	}
	return nil
}

// normalizeGuarantee parses and checks the dates. New guarantees always
// start inactive and unaccepted; activation happens through the
// acceptance or status transitions.
func normalizeGuarantee(in GuaranteeInput) (*models.Guarantee, error) {
	start, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return nil, utils.NewDateFormatError("guarantee start date must be formatted as YYYY-MM-DD")
	}
	end, err := utils.ParseDate(in.EndDate)
	if err != nil {
		return nil, utils.NewDateFormatError("guarantee end date must be formatted as YYYY-MM-DD")
	}
	if start.After(end) {
		return nil, utils.NewValidationError("guarantee start date must not be after end date")
	}
	if in.TypeGuarantee != "" && !utils.ContainsString(models.GuaranteeTypes, in.TypeGuarantee) {
		return nil, utils.NewValidationError("unknown guarantee type: " + in.TypeGuarantee)
	}
	return &models.Guarantee{
		TypeGuarantee: in.TypeGuarantee,
		StartDate:     start,
		EndDate:       end,
		Terms:         in.Terms,
		Notes:         in.Notes,
		Status:        models.GuaranteeInactive,
		Accepted:      false,
	}, nil
}

func checkEnum(value string, allowed []string, field string) error {
	if value == "" {
		return nil
	}
	if !utils.ContainsString(allowed, value) {
		return utils.NewValidationError("invalid " + field + ": " + value)
	}
	return nil
}

// assignOrder stamps ids and owning-order references across a batch of
// normalized items so the whole graph can be written in one create.
func assignOrder(orderID uuid.UUID, items []models.ServiceItem) {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].OrderID = orderID
		if items[i].Guarantee != nil {
			items[i].Guarantee.ID = uuid.New()
			items[i].Guarantee.OrderID = orderID
			items[i].Guarantee.ServiceItemID = &items[i].ID
		}
	}
}

// standaloneGuarantees scopes an order's guarantee list to the legacy
// entries attached directly to the order. Line-item guarantees are
// reachable only under their service items; without this scope every
// order response would carry them twice.
func standaloneGuarantees(db *gorm.DB) *gorm.DB {
	return db.Where("service_item_id IS NULL")
}

// storeCtx bounds a store interaction; a timeout is a transient
// failure, not a domain error.
func storeCtx(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 5 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

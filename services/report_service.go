package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"carcare-backend/models"
	"carcare-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerQuery is the reporting filter spec: branch (anchored,
// case-insensitive), free-text search, whitelisted sort and a page
// window. It is independent of any particular store's query language;
// everything compiles to portable SQL.
type CustomerQuery struct {
	Branch  string
	Search  string
	SortBy  string
	SortDir string
	Offset  int
	Limit   int
}

type OrderStats struct {
	TotalOrders      int `json:"totalOrders"`
	ActiveGuarantees int `json:"activeGuarantees"`
}

type CustomerWithStats struct {
	models.Customer
	OrderStats OrderStats `json:"orderStats"`
}

type Pagination struct {
	TotalClients int64 `json:"totalClients"`
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	NextPage     int   `json:"nextPage"`
	Limit        int   `json:"limit"`
	Offset       int   `json:"offset"`
}

type CustomerPage struct {
	Pagination Pagination          `json:"pagination"`
	Clients    []CustomerWithStats `json:"clients"`
}

// Sort keys the API accepts, mapped to their columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"firstName": "first_name",
	"lastName":  "last_name",
	"branch":    "branch",
	"phone":     "phone",
}

// ReportService answers the read-only customer queries: filtered,
// searched, sorted pages joined with orders and computed stats.
type ReportService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewReportService(db *gorm.DB, timeout time.Duration) *ReportService {
	return &ReportService{db: db, timeout: timeout}
}

// ListCustomers runs the filter pipeline twice with the same
// predicate: once for the total count, once for the page itself.
func (s *ReportService) ListCustomers(ctx context.Context, q CustomerQuery) (*CustomerPage, error) {
	if q.Limit < 1 || q.Limit > 100 {
		return nil, utils.NewValidationError("limit must be between 1 and 100")
	}
	if q.Offset < 0 {
		return nil, utils.NewValidationError("offset must be positive")
	}
	orderClause, err := sortClause(q.SortBy, q.SortDir)
	if err != nil {
		return nil, err
	}

	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	var total int64
	if err := s.filtered(s.db.WithContext(cctx), q).Count(&total).Error; err != nil {
		return nil, utils.NewInternalError("failed to count customers", err)
	}

	var customers []models.Customer
	err = s.filtered(s.db.WithContext(cctx), q).
		Order(orderClause).
		Offset(q.Offset).
		Limit(q.Limit).
		Preload("Orders", nonDeletedOrdersNewestFirst).
		Preload("Orders.Services").
		Preload("Orders.Services.Guarantee").
		Preload("Orders.Guarantees", standaloneGuarantees).
		Find(&customers).Error
	if err != nil {
		return nil, utils.NewInternalError("failed to list customers", err)
	}

	now := time.Now()
	clients := make([]CustomerWithStats, 0, len(customers))
	for _, c := range customers {
		clients = append(clients, withStats(c, now))
	}

	currentPage := q.Offset/q.Limit + 1
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	nextPage := 0
	if currentPage < totalPages {
		nextPage = currentPage + 1
	}

	return &CustomerPage{
		Pagination: Pagination{
			TotalClients: total,
			CurrentPage:  currentPage,
			TotalPages:   totalPages,
			NextPage:     nextPage,
			Limit:        q.Limit,
			Offset:       q.Offset,
		},
		Clients: clients,
	}, nil
}

// GetCustomerWithOrders returns one customer joined with its orders and
// the computed stats.
func (s *ReportService) GetCustomerWithOrders(ctx context.Context, customerID uuid.UUID) (*CustomerWithStats, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	var customer models.Customer
	err := s.db.WithContext(cctx).
		Where("id = ? AND is_deleted = ?", customerID, false).
		Preload("Orders", nonDeletedOrdersNewestFirst).
		Preload("Orders.Services").
		Preload("Orders.Services.Guarantee").
		Preload("Orders.Guarantees", standaloneGuarantees).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("Client not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to fetch customer", err)
	}

	result := withStats(customer, time.Now())
	return &result, nil
}

// filtered applies the shared predicate; count and page must go through
// the identical pipeline.
func (s *ReportService) filtered(db *gorm.DB, q CustomerQuery) *gorm.DB {
	query := db.Model(&models.Customer{}).Where("is_deleted = ?", false)

	if branch := strings.TrimSpace(q.Branch); branch != "" {
		query = query.Where("LOWER(branch) = ?", strings.ToLower(branch))
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			`LOWER(first_name) LIKE ? OR LOWER(middle_name) LIKE ? OR LOWER(last_name) LIKE ?
			 OR LOWER(first_name || ' ' || middle_name || ' ' || last_name) LIKE ?
			 OR LOWER(phone) LIKE ?`,
			term, term, term, term, term,
		)
	}

	return query
}

func nonDeletedOrdersNewestFirst(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false).Order("created_at DESC")
}

// withStats computes the point-in-time aggregates: order count and the
// number of joined orders still under guarantee.
func withStats(c models.Customer, now time.Time) CustomerWithStats {
	stats := OrderStats{TotalOrders: len(c.Orders)}
	for _, o := range c.Orders {
		if o.HasActiveGuarantee(now) {
			stats.ActiveGuarantees++
		}
	}
	return CustomerWithStats{Customer: c, OrderStats: stats}
}

func sortClause(sortBy, sortDir string) (string, error) {
	if sortBy == "" {
		return "created_at DESC", nil
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return "", utils.NewValidationError("unknown sort key: " + sortBy)
	}
	dir := "DESC"
	switch strings.ToLower(sortDir) {
	case "", "desc":
	case "asc":
		dir = "ASC"
	default:
		return "", utils.NewValidationError("sort direction must be asc or desc")
	}
	return column + " " + dir, nil
}

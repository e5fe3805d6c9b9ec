package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"carcare-backend/models"
	"carcare-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCustomer(t *testing.T, db *gorm.DB, first, middle, last, phone, branch string) models.Customer {
	t.Helper()
	c := models.Customer{
		FirstName:  first,
		MiddleName: middle,
		LastName:   last,
		Phone:      phone,
		ClientType: models.ClientTypeIndividual,
		Branch:     branch,
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func TestListCustomersPaginationBounds(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, testTimeout)

	for _, q := range []CustomerQuery{
		{Limit: 0},
		{Limit: 101},
		{Limit: 10, Offset: -1},
	} {
		_, err := svc.ListCustomers(context.Background(), q)
		require.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.KindValidation), "query %+v", q)
	}
}

func TestListCustomersPaginationMath(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, testTimeout)

	// 25 matching customers plus noise in another branch.
	for i := 0; i < 25; i++ {
		seedCustomer(t, db, "عميل", "رقم", fmt.Sprintf("%d", i), fmt.Sprintf("05123456%02d", i), models.BranchOther)
	}
	seedCustomer(t, db, "عميل", "فرع", "آخر", "0599999999", models.BranchObhur)

	page, err := svc.ListCustomers(context.Background(), CustomerQuery{
		Branch: models.BranchOther,
		Search: "512",
		Limit:  10,
		Offset: 0,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 25, page.Pagination.TotalClients)
	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.NextPage)
	assert.Len(t, page.Clients, 10)

	// Last page: a short window and no next page.
	page, err = svc.ListCustomers(context.Background(), CustomerQuery{
		Branch: models.BranchOther,
		Search: "512",
		Limit:  10,
		Offset: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.CurrentPage)
	assert.Equal(t, 0, page.Pagination.NextPage)
	assert.Len(t, page.Clients, 5)
}

func TestListCustomersBranchFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, testTimeout)

	seedCustomer(t, db, "سالم", "عبدالله", "الحربي", "0511111111", models.BranchObhur)
	seedCustomer(t, db, "فهد", "سعيد", "الزهراني", "0522222222", models.BranchMadinah)

	page, err := svc.ListCustomers(context.Background(), CustomerQuery{Branch: models.BranchObhur, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Clients, 1)
	assert.Equal(t, "0511111111", page.Clients[0].Phone)
}

func TestListCustomersSearchMatchesJoinedName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, testTimeout)

	seedCustomer(t, db, "Ahmed", "Ali", "Hassan", "0511111111", models.BranchOther)
	seedCustomer(t, db, "Omar", "Khaled", "Saleh", "0522222222", models.BranchOther)

	// Spans first and middle name, case-insensitive.
	page, err := svc.ListCustomers(context.Background(), CustomerQuery{Search: "ahmed al", Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Clients, 1)
	assert.Equal(t, "Ahmed", page.Clients[0].FirstName)
}

func TestListCustomersSearchMatchesPhone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, testTimeout)

	seedCustomer(t, db, "سالم", "عبدالله", "الحربي", "0534567890", models.BranchOther)
	seedCustomer(t, db, "فهد", "سعيد", "الزهراني", "0522222222", models.BranchOther)

	page, err := svc.ListCustomers(context.Background(), CustomerQuery{Search: "4567", Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Clients, 1)
	assert.Equal(t, "0534567890", page.Clients[0].Phone)
}

func TestListCustomersExcludesDeleted(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, testTimeout)

	c := seedCustomer(t, db, "سالم", "عبدالله", "الحربي", "0511111111", models.BranchOther)
	require.NoError(t, db.Model(&models.Customer{}).Where("id = ?", c.ID).Update("is_deleted", true).Error)

	page, err := svc.ListCustomers(context.Background(), CustomerQuery{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Clients)
	assert.Zero(t, page.Pagination.TotalClients)
}

func TestListCustomersSortWhitelist(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, testTimeout)

	_, err := svc.ListCustomers(context.Background(), CustomerQuery{Limit: 10, SortBy: "phone; DROP TABLE customers"})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = svc.ListCustomers(context.Background(), CustomerQuery{Limit: 10, SortBy: "firstName", SortDir: "sideways"})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestListCustomersSortOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, testTimeout)

	seedCustomer(t, db, "Bashir", "A", "B", "0511111111", models.BranchOther)
	seedCustomer(t, db, "Adel", "A", "B", "0522222222", models.BranchOther)

	page, err := svc.ListCustomers(context.Background(), CustomerQuery{Limit: 10, SortBy: "firstName", SortDir: "asc"})
	require.NoError(t, err)
	require.Len(t, page.Clients, 2)
	assert.Equal(t, "Adel", page.Clients[0].FirstName)
	assert.Equal(t, "Bashir", page.Clients[1].FirstName)
}

func TestCustomerOrderStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, testTimeout)

	// seedOrderWithGuarantee leaves one order whose guarantee ends three
	// years out; add a second order whose guarantee already lapsed and a
	// deleted third that must not count at all.
	customer, _, _ := seedOrderWithGuarantee(t, db)

	lapsedID := uuid.New()
	lapsed := models.WorkOrder{
		ID:              lapsedID,
		CustomerID:      customer.ID,
		CarType:         "سيدان",
		CarModel:        "النترا",
		CarColor:        "أزرق",
		CarPlateNumber:  "ك ل م 1111",
		CarManufacturer: "هيونداي",
		CarSize:         "صغير",
		Guarantees: []models.Guarantee{{
			OrderID:       lapsedID,
			TypeGuarantee: "2 سنوات",
			StartDate:     time.Now().AddDate(-3, 0, 0),
			EndDate:       time.Now().AddDate(-1, 0, 0),
			Status:        models.GuaranteeActive,
		}},
	}
	require.NoError(t, db.Create(&lapsed).Error)

	// A guarantee whose window has not opened yet is not active.
	pendingID := uuid.New()
	pending := models.WorkOrder{
		ID:              pendingID,
		CustomerID:      customer.ID,
		CarType:         "سيدان",
		CarModel:        "سوناتا",
		CarColor:        "أخضر",
		CarPlateNumber:  "ف ص ق 3333",
		CarManufacturer: "هيونداي",
		CarSize:         "متوسط",
		Guarantees: []models.Guarantee{{
			OrderID:       pendingID,
			TypeGuarantee: "3 سنوات",
			StartDate:     time.Now().AddDate(0, 1, 0),
			EndDate:       time.Now().AddDate(3, 1, 0),
			Status:        models.GuaranteeActive,
		}},
	}
	require.NoError(t, db.Create(&pending).Error)

	deleted := models.WorkOrder{
		CustomerID:      customer.ID,
		CarType:         "سيدان",
		CarModel:        "أكسنت",
		CarColor:        "أحمر",
		CarPlateNumber:  "ن س ع 2222",
		CarManufacturer: "هيونداي",
		CarSize:         "صغير",
		IsDeleted:       true,
	}
	require.NoError(t, db.Create(&deleted).Error)

	result, err := svc.GetCustomerWithOrders(context.Background(), customer.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, result.OrderStats.TotalOrders)
	assert.Equal(t, 1, result.OrderStats.ActiveGuarantees)
	assert.Len(t, result.Orders, 3)
}

func TestGetCustomerWithOrdersNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, testTimeout)

	_, err := svc.GetCustomerWithOrders(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	assert.Equal(t, "Client not found", utils.AsAppError(err).Message)
}

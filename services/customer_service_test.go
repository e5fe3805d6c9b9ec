package services

import (
	"context"
	"testing"

	"carcare-backend/models"
	"carcare-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpdateCustomerPartialFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db, testTimeout)
	customer := seedCustomer(t, db, "سالم", "عبدالله", "الحربي", "0511111111", models.BranchObhur)

	updated, err := svc.Update(context.Background(), customer.ID, CustomerUpdateInput{
		FirstName: strPtr("ماجد"),
		Branch:    strPtr(models.BranchMadinah),
	})
	require.NoError(t, err)

	assert.Equal(t, "ماجد", updated.FirstName)
	assert.Equal(t, models.BranchMadinah, updated.Branch)
	// Untouched fields survive.
	assert.Equal(t, "عبدالله", updated.MiddleName)
	assert.Equal(t, "0511111111", updated.Phone)
}

func TestUpdateCustomerValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db, testTimeout)
	customer := seedCustomer(t, db, "سالم", "عبدالله", "الحربي", "0511111111", models.BranchObhur)

	cases := []CustomerUpdateInput{
		{Phone: strPtr("0711111111")},
		{Email: strPtr("not-an-email")},
		{ClientType: strPtr("government")},
		{Branch: strPtr("فرع وهمي")},
	}
	for _, in := range cases {
		_, err := svc.Update(context.Background(), customer.ID, in)
		require.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.KindValidation), "input %+v", in)
	}
}

func TestUpdateCustomerPhoneConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db, testTimeout)
	seedCustomer(t, db, "سالم", "عبدالله", "الحربي", "0511111111", models.BranchObhur)
	other := seedCustomer(t, db, "فهد", "سعيد", "الزهراني", "0522222222", models.BranchMadinah)

	_, err := svc.Update(context.Background(), other.ID, CustomerUpdateInput{Phone: strPtr("0511111111")})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConflict))
}

func TestUpdateUnknownCustomer(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db, testTimeout)

	_, err := svc.Update(context.Background(), uuid.New(), CustomerUpdateInput{FirstName: strPtr("ماجد")})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestSoftDeleteCustomer(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db, testTimeout)
	reports := NewReportService(db, testTimeout)
	customer := seedCustomer(t, db, "سالم", "عبدالله", "الحربي", "0511111111", models.BranchObhur)

	require.NoError(t, svc.SoftDelete(context.Background(), customer.ID))

	_, err := reports.GetCustomerWithOrders(context.Background(), customer.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	err = svc.SoftDelete(context.Background(), customer.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"silab/internal/domain"
)

func seedEquipment(t *testing.T, db *gorm.DB, name, code string) *domain.Equipment {
	t.Helper()

	e := &domain.Equipment{
		Name:      name,
		Code:      code,
		Category:  "multimedia",
		Condition: domain.ConditionGood,
		Available: true,
	}
	require.NoError(t, NewEquipmentRepository(db).Create(context.Background(), e))
	return e
}

func openLoan(borrowedAt time.Time, items ...*domain.Equipment) *domain.LoanTransaction {
	lt := &domain.LoanTransaction{
		Ref:            "LN-" + borrowedAt.Format("20060102150405"),
		BorrowerName:   "Budi Santoso",
		OfficerName:    "Sari",
		GuaranteeType:  "ktm",
		GuaranteeNo:    "672018001",
		BorrowedAt:     borrowedAt,
		ExpectedReturn: borrowedAt.Add(48 * time.Hour),
	}
	for _, e := range items {
		lt.Items = append(lt.Items, domain.LoanItem{
			EquipmentID:   e.ID,
			EquipmentName: e.Name,
		})
	}
	return lt
}

func TestLoanRepository_OpenFlipsAvailability(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	loans := NewLoanRepository(db)
	equipment := NewEquipmentRepository(db)

	projector := seedEquipment(t, db, "Projector", "FTI-PRJ-01")
	camera := seedEquipment(t, db, "Camera", "FTI-CAM-01")

	lt := openLoan(time.Now(), projector, camera)
	require.NoError(t, loans.Open(ctx, lt))
	assert.NotZero(t, lt.ID)
	assert.Len(t, lt.Items, 2)
	for _, it := range lt.Items {
		assert.Equal(t, domain.LoanBorrowed, it.Status)
	}

	for _, e := range []*domain.Equipment{projector, camera} {
		got, err := equipment.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.False(t, got.Available)
	}
}

func TestLoanRepository_OpenRollsBackOnUnavailableEquipment(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	loans := NewLoanRepository(db)
	equipment := NewEquipmentRepository(db)

	tripod := seedEquipment(t, db, "Tripod", "FTI-TRI-01")
	mic := seedEquipment(t, db, "Microphone", "FTI-MIC-01")

	require.NoError(t, loans.Open(ctx, openLoan(time.Now(), tripod)))

	// mic is free but tripod is out, so the whole second loan must fail
	err := loans.Open(ctx, openLoan(time.Now().Add(time.Minute), mic, tripod))
	assert.ErrorIs(t, err, ErrEquipmentUnavailable)

	var txCount, itemCount int64
	require.NoError(t, db.Model(&loanTransactionModel{}).Count(&txCount).Error)
	require.NoError(t, db.Model(&loanItemModel{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), txCount)
	assert.Equal(t, int64(1), itemCount)

	got, err := equipment.GetByID(ctx, mic.ID)
	require.NoError(t, err)
	assert.True(t, got.Available, "equipment from the rolled-back loan stays free")
}

func TestLoanRepository_ReturnItemsIndependently(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	loans := NewLoanRepository(db)
	equipment := NewEquipmentRepository(db)

	projector := seedEquipment(t, db, "Projector", "FTI-PRJ-01")
	camera := seedEquipment(t, db, "Camera", "FTI-CAM-01")

	lt := openLoan(time.Now(), projector, camera)
	require.NoError(t, loans.Open(ctx, lt))

	returnedAt := time.Now().Add(time.Hour)
	item, err := loans.ReturnItem(ctx, lt.Items[0].ID, domain.LoanReturned, returnedAt)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanReturned, item.Status)
	require.NotNil(t, item.ReturnedAt)

	// first item's equipment is free again, second is still out
	got, err := equipment.GetByID(ctx, projector.ID)
	require.NoError(t, err)
	assert.True(t, got.Available)

	got, err = equipment.GetByID(ctx, camera.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)

	other, err := loans.GetItem(ctx, lt.Items[1].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanBorrowed, other.Status)

	_, err = loans.ReturnItem(ctx, lt.Items[0].ID, domain.LoanReturned, returnedAt)
	assert.ErrorIs(t, err, ErrAlreadyReturned)
}

func TestLoanRepository_CountOutstanding(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	loans := NewLoanRepository(db)

	projector := seedEquipment(t, db, "Projector", "FTI-PRJ-01")
	camera := seedEquipment(t, db, "Camera", "FTI-CAM-01")

	lt := openLoan(time.Now().Add(-72*time.Hour), projector, camera)
	require.NoError(t, loans.Open(ctx, lt))
	_, err := loans.ReturnItem(ctx, lt.Items[0].ID, domain.LoanLate, time.Now())
	require.NoError(t, err)

	borrowed, late, err := loans.CountOutstanding(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), borrowed)
	assert.Equal(t, int64(1), late)
}

package loan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"silab/internal/domain"
	"silab/internal/repository"
)

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Open(ctx context.Context, lt *domain.LoanTransaction) error {
	args := m.Called(ctx, lt)
	lt.ID = 55
	for i := range lt.Items {
		lt.Items[i].ID = int64(500 + i)
		lt.Items[i].TransactionID = lt.ID
		lt.Items[i].Status = domain.LoanBorrowed
	}
	return args.Error(0)
}

func (m *MockLoanRepository) GetItem(ctx context.Context, itemID int64) (*domain.LoanItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanItem), args.Error(1)
}

func (m *MockLoanRepository) GetTransaction(ctx context.Context, id int64) (*domain.LoanTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanTransaction), args.Error(1)
}

func (m *MockLoanRepository) ReturnItem(ctx context.Context, itemID int64, status domain.LoanItemStatus, returnedAt time.Time) (*domain.LoanItem, error) {
	args := m.Called(ctx, itemID, status, returnedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanItem), args.Error(1)
}

func (m *MockLoanRepository) DeleteItem(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockLoanRepository) List(ctx context.Context, f repository.LoanFilter) ([]domain.LoanTransaction, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanTransaction), args.Error(1)
}

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
}

func newTestService(loans *MockLoanRepository, eq *MockEquipmentRepository) *Service {
	svc := NewService(loans, eq)
	svc.now = fixedNow
	return svc
}

func TestService_Open_MultiItem(t *testing.T) {
	loans := new(MockLoanRepository)
	eq := new(MockEquipmentRepository)

	eq.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Equipment{ID: 1, Name: "Proyektor Epson", Available: true}, nil)
	eq.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.Equipment{ID: 2, Name: "Arduino Kit", Available: true}, nil)
	loans.On("Open", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(loans, eq)
	lt, err := svc.Open(context.Background(), OpenRequest{
		BorrowerName:   "Siti Rahma",
		OfficerName:    "Pak Dedi",
		GuaranteeType:  "KTM",
		GuaranteeNo:    "672019001",
		ExpectedReturn: fixedNow().Add(48 * time.Hour),
		EquipmentIDs:   []int64{1, 2},
	})

	assert.NoError(t, err)
	assert.Len(t, lt.Items, 2)
	assert.NotEmpty(t, lt.Ref)
	for _, it := range lt.Items {
		assert.Equal(t, domain.LoanBorrowed, it.Status)
	}
}

func TestService_Open_RejectsUnavailableEquipment(t *testing.T) {
	loans := new(MockLoanRepository)
	eq := new(MockEquipmentRepository)

	eq.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Equipment{ID: 1, Name: "Proyektor Epson", Available: false}, nil)

	svc := newTestService(loans, eq)
	_, err := svc.Open(context.Background(), OpenRequest{
		BorrowerName:   "Siti Rahma",
		OfficerName:    "Pak Dedi",
		GuaranteeType:  "KTM",
		ExpectedReturn: fixedNow().Add(24 * time.Hour),
		EquipmentIDs:   []int64{1},
	})

	assert.ErrorIs(t, err, ErrUnavailable)
	loans.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}

func TestService_Open_RejectsPastReturnAndDuplicates(t *testing.T) {
	svc := newTestService(new(MockLoanRepository), new(MockEquipmentRepository))

	_, err := svc.Open(context.Background(), OpenRequest{
		BorrowerName:   "Siti",
		OfficerName:    "Dedi",
		GuaranteeType:  "KTP",
		ExpectedReturn: fixedNow().Add(-time.Hour),
		EquipmentIDs:   []int64{1},
	})
	assert.ErrorIs(t, err, ErrValidation)

	eq := new(MockEquipmentRepository)
	eq.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Equipment{ID: 1, Available: true}, nil)
	svc = newTestService(new(MockLoanRepository), eq)

	_, err = svc.Open(context.Background(), OpenRequest{
		BorrowerName:   "Siti",
		OfficerName:    "Dedi",
		GuaranteeType:  "KTP",
		ExpectedReturn: fixedNow().Add(time.Hour),
		EquipmentIDs:   []int64{1, 1},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Return_OnTimeAndLate(t *testing.T) {
	item := &domain.LoanItem{ID: 500, TransactionID: 55, EquipmentID: 1, Status: domain.LoanBorrowed}

	t.Run("on time", func(t *testing.T) {
		loans := new(MockLoanRepository)
		loans.On("GetItem", mock.Anything, int64(500)).Return(item, nil)
		loans.On("GetTransaction", mock.Anything, int64(55)).Return(&domain.LoanTransaction{
			ID:             55,
			ExpectedReturn: fixedNow().Add(time.Hour),
		}, nil)
		returned := *item
		returned.Status = domain.LoanReturned
		loans.On("ReturnItem", mock.Anything, int64(500), domain.LoanReturned, fixedNow()).
			Return(&returned, nil)

		svc := newTestService(loans, new(MockEquipmentRepository))
		out, err := svc.Return(context.Background(), 500)

		assert.NoError(t, err)
		assert.Equal(t, domain.LoanReturned, out.Status)
	})

	t.Run("late", func(t *testing.T) {
		loans := new(MockLoanRepository)
		loans.On("GetItem", mock.Anything, int64(500)).Return(item, nil)
		loans.On("GetTransaction", mock.Anything, int64(55)).Return(&domain.LoanTransaction{
			ID:             55,
			ExpectedReturn: fixedNow().Add(-time.Hour),
		}, nil)
		late := *item
		late.Status = domain.LoanLate
		loans.On("ReturnItem", mock.Anything, int64(500), domain.LoanLate, fixedNow()).
			Return(&late, nil)

		svc := newTestService(loans, new(MockEquipmentRepository))
		out, err := svc.Return(context.Background(), 500)

		assert.NoError(t, err)
		assert.Equal(t, domain.LoanLate, out.Status)
	})

	t.Run("double return rejected", func(t *testing.T) {
		loans := new(MockLoanRepository)
		loans.On("GetItem", mock.Anything, int64(500)).Return(item, nil)
		loans.On("GetTransaction", mock.Anything, int64(55)).Return(&domain.LoanTransaction{
			ID:             55,
			ExpectedReturn: fixedNow().Add(time.Hour),
		}, nil)
		loans.On("ReturnItem", mock.Anything, int64(500), domain.LoanReturned, fixedNow()).
			Return(nil, repository.ErrAlreadyReturned)

		svc := newTestService(loans, new(MockEquipmentRepository))
		_, err := svc.Return(context.Background(), 500)

		assert.ErrorIs(t, err, ErrAlreadyReturned)
	})
}

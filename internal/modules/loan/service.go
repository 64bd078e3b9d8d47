package loan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"silab/internal/domain"
	"silab/internal/repository"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("loan not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrUnavailable       = errors.New("equipment is not available")
	ErrAlreadyReturned   = errors.New("item was already returned")
)

type LoanRepository interface {
	Open(ctx context.Context, lt *domain.LoanTransaction) error
	GetItem(ctx context.Context, itemID int64) (*domain.LoanItem, error)
	GetTransaction(ctx context.Context, id int64) (*domain.LoanTransaction, error)
	ReturnItem(ctx context.Context, itemID int64, status domain.LoanItemStatus, returnedAt time.Time) (*domain.LoanItem, error)
	DeleteItem(ctx context.Context, itemID int64) error
	List(ctx context.Context, f repository.LoanFilter) ([]domain.LoanTransaction, error)
}

type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

type Service struct {
	loans     LoanRepository
	equipment EquipmentRepository
	now       func() time.Time
}

func NewService(loans LoanRepository, equipment EquipmentRepository) *Service {
	return &Service{loans: loans, equipment: equipment, now: time.Now}
}

type OpenRequest struct {
	BorrowerName   string    `json:"borrower_name" binding:"required"`
	OfficerName    string    `json:"officer_name" binding:"required"`
	GuaranteeType  string    `json:"guarantee_type" binding:"required"`
	GuaranteeNo    string    `json:"guarantee_no"`
	ExpectedReturn time.Time `json:"expected_return" binding:"required"`
	EquipmentIDs   []int64   `json:"equipment_ids" binding:"required,min=1"`
}

// Open starts a borrowing transaction for one or more items. Every item must
// be available; the repository flips availability in the same transaction
// that creates the records.
func (s *Service) Open(ctx context.Context, req OpenRequest) (*domain.LoanTransaction, error) {
	now := s.now()
	if !req.ExpectedReturn.After(now) {
		return nil, ErrValidation
	}

	seen := make(map[int64]bool, len(req.EquipmentIDs))
	items := make([]domain.LoanItem, 0, len(req.EquipmentIDs))
	for _, id := range req.EquipmentIDs {
		if seen[id] {
			return nil, ErrValidation
		}
		seen[id] = true

		eq, err := s.equipment.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrEquipmentNotFound
			}
			return nil, err
		}
		if !eq.Available {
			return nil, ErrUnavailable
		}
		items = append(items, domain.LoanItem{
			EquipmentID:   eq.ID,
			EquipmentName: eq.Name,
		})
	}

	lt := &domain.LoanTransaction{
		Ref:            uuid.NewString(),
		BorrowerName:   req.BorrowerName,
		OfficerName:    req.OfficerName,
		GuaranteeType:  req.GuaranteeType,
		GuaranteeNo:    req.GuaranteeNo,
		BorrowedAt:     now,
		ExpectedReturn: req.ExpectedReturn,
		Items:          items,
	}

	if err := s.loans.Open(ctx, lt); err != nil {
		if errors.Is(err, repository.ErrEquipmentUnavailable) {
			return nil, ErrUnavailable
		}
		return nil, err
	}
	return lt, nil
}

// Return closes one line item. Items past the transaction's expected return
// come back as late; either way the equipment becomes available again. Other
// items of the same transaction are untouched.
func (s *Service) Return(ctx context.Context, itemID int64) (*domain.LoanItem, error) {
	item, err := s.loans.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lt, err := s.loans.GetTransaction(ctx, item.TransactionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	status := domain.LoanReturned
	if now.After(lt.ExpectedReturn) {
		status = domain.LoanLate
	}

	out, err := s.loans.ReturnItem(ctx, itemID, status, now)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyReturned) {
			return nil, ErrAlreadyReturned
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *Service) DeleteItem(ctx context.Context, itemID int64) error {
	err := s.loans.DeleteItem(ctx, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.LoanTransaction, error) {
	lt, err := s.loans.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return lt, nil
}

func (s *Service) List(ctx context.Context, status domain.LoanItemStatus, search string) ([]domain.LoanTransaction, error) {
	return s.loans.List(ctx, repository.LoanFilter{Status: status, Search: search})
}

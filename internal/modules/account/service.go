package account

import (
	"context"
	"errors"

	"silab/internal/domain"
	"silab/internal/pkg/validator"
	"silab/internal/repository"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("account not found")
)

type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, a *domain.Account) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context, f repository.AccountFilter) ([]domain.Account, error)
}

type Service struct {
	accounts AccountRepository
}

func NewService(accounts AccountRepository) *Service {
	return &Service{accounts: accounts}
}

type UpsertRequest struct {
	Name       string               `json:"name" validate:"required"`
	Email      string               `json:"email" validate:"required,email"`
	Role       domain.AccountRole   `json:"role"`
	Identifier string               `json:"identifier" validate:"required"`
	Department string               `json:"department"`
	Status     domain.AccountStatus `json:"status"`
}

func (req *UpsertRequest) normalize() error {
	if req.Role == "" {
		req.Role = domain.AccountStudent
	}
	if req.Status == "" {
		req.Status = domain.AccountActive
	}
	switch req.Role {
	case domain.AccountStudent, domain.AccountLecturer, domain.AccountStaff:
	default:
		return ErrValidation
	}
	switch req.Status {
	case domain.AccountActive, domain.AccountInactive, domain.AccountSuspended:
	default:
		return ErrValidation
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (*domain.Account, error) {
	if violations := validator.Validate(req); violations != nil {
		return nil, ErrValidation
	}
	if err := req.normalize(); err != nil {
		return nil, err
	}

	a := &domain.Account{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Identifier: req.Identifier,
		Department: req.Department,
		Status:     req.Status,
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertRequest) (*domain.Account, error) {
	if violations := validator.Validate(req); violations != nil {
		return nil, ErrValidation
	}
	if err := req.normalize(); err != nil {
		return nil, err
	}

	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	a.Name = req.Name
	a.Email = req.Email
	a.Role = req.Role
	a.Identifier = req.Identifier
	a.Department = req.Department
	a.Status = req.Status

	if err := s.accounts.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// SetStatus flips an account between active, inactive and suspended without
// touching the rest of the record.
func (s *Service) SetStatus(ctx context.Context, id int64, status domain.AccountStatus) (*domain.Account, error) {
	switch status {
	case domain.AccountActive, domain.AccountInactive, domain.AccountSuspended:
	default:
		return nil, ErrValidation
	}

	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	a.Status = status
	if err := s.accounts.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.accounts.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Account, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, f repository.AccountFilter) ([]domain.Account, error) {
	return s.accounts.List(ctx, f)
}

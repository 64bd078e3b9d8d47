package staff

import (
	"context"
	"errors"

	"silab/internal/domain"
	"silab/internal/pkg/validator"
	"silab/internal/repository"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("staff not found")
)

type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) error
	Update(ctx context.Context, s *domain.Staff) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	List(ctx context.Context, search string) ([]domain.Staff, error)
	ListActiveTechnicians(ctx context.Context) ([]domain.Staff, error)
}

type Service struct {
	staff StaffRepository
}

func NewService(staff StaffRepository) *Service {
	return &Service{staff: staff}
}

type UpsertRequest struct {
	Name   string             `json:"name" validate:"required"`
	NIP    string             `json:"nip" validate:"required"`
	Email  string             `json:"email" validate:"required,email"`
	Phone  string             `json:"phone"`
	Type   domain.StaffType   `json:"type"`
	Status domain.StaffStatus `json:"status"`
}

func (req *UpsertRequest) normalize() error {
	if req.Type == "" {
		req.Type = domain.StaffTechnician
	}
	if req.Status == "" {
		req.Status = domain.StaffActive
	}
	switch req.Type {
	case domain.StaffTechnician, domain.StaffAdmin:
	default:
		return ErrValidation
	}
	switch req.Status {
	case domain.StaffActive, domain.StaffInactive:
	default:
		return ErrValidation
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (*domain.Staff, error) {
	if violations := validator.Validate(req); violations != nil {
		return nil, ErrValidation
	}
	if err := req.normalize(); err != nil {
		return nil, err
	}

	st := &domain.Staff{
		Name:   req.Name,
		NIP:    req.NIP,
		Email:  req.Email,
		Phone:  req.Phone,
		Type:   req.Type,
		Status: req.Status,
	}
	if err := s.staff.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertRequest) (*domain.Staff, error) {
	if violations := validator.Validate(req); violations != nil {
		return nil, ErrValidation
	}
	if err := req.normalize(); err != nil {
		return nil, err
	}

	st, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	st.Name = req.Name
	st.NIP = req.NIP
	st.Email = req.Email
	st.Phone = req.Phone
	st.Type = req.Type
	st.Status = req.Status

	if err := s.staff.Update(ctx, st); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.staff.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Staff, error) {
	st, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

func (s *Service) List(ctx context.Context, search string) ([]domain.Staff, error) {
	return s.staff.List(ctx, search)
}

// Technicians lists active technicians, the candidates for room PIC.
func (s *Service) Technicians(ctx context.Context) ([]domain.Staff, error) {
	return s.staff.ListActiveTechnicians(ctx)
}

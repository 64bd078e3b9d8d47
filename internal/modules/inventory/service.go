package inventory

import (
	"context"
	"errors"

	"silab/internal/domain"
	"silab/internal/pkg/validator"
	"silab/internal/repository"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("equipment not found")
	ErrOnLoan     = errors.New("equipment is out on loan")
)

type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	Update(ctx context.Context, e *domain.Equipment) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, error)
}

type Service struct {
	equipment EquipmentRepository
}

func NewService(equipment EquipmentRepository) *Service {
	return &Service{equipment: equipment}
}

type UpsertRequest struct {
	Name      string                    `json:"name" validate:"required"`
	Code      string                    `json:"code" validate:"required"`
	Category  string                    `json:"category"`
	Condition domain.EquipmentCondition `json:"condition"`
	ImageURL  string                    `json:"image_url"`
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (*domain.Equipment, error) {
	if violations := validator.Validate(req); violations != nil {
		return nil, ErrValidation
	}
	if req.Condition == "" {
		req.Condition = domain.ConditionGood
	}
	if !req.Condition.Valid() {
		return nil, ErrValidation
	}

	e := &domain.Equipment{
		Name:      req.Name,
		Code:      req.Code,
		Category:  req.Category,
		Condition: req.Condition,
		Available: true,
		ImageURL:  req.ImageURL,
	}
	if err := s.equipment.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertRequest) (*domain.Equipment, error) {
	if violations := validator.Validate(req); violations != nil {
		return nil, ErrValidation
	}
	if req.Condition != "" && !req.Condition.Valid() {
		return nil, ErrValidation
	}

	e, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	e.Name = req.Name
	e.Code = req.Code
	e.Category = req.Category
	if req.Condition != "" {
		e.Condition = req.Condition
	}
	e.ImageURL = req.ImageURL

	if err := s.equipment.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Delete refuses to remove an item that is currently borrowed; the loan has
// to be closed first.
func (s *Service) Delete(ctx context.Context, id int64) error {
	e, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !e.Available {
		return ErrOnLoan
	}

	err = s.equipment.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	e, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, error) {
	return s.equipment.List(ctx, f)
}

package room

import (
	"context"
	"errors"

	"silab/internal/domain"
	"silab/internal/pkg/validator"
	"silab/internal/repository"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("room not found")
	ErrUnknownPIC = errors.New("pic is not an active technician")
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, search, sortBy string) ([]domain.Room, error)
}

// TechnicianDirectory answers who may be assigned as a room PIC.
type TechnicianDirectory interface {
	ListActiveTechnicians(ctx context.Context) ([]domain.Staff, error)
}

type Service struct {
	rooms       RoomRepository
	technicians TechnicianDirectory
}

func NewService(rooms RoomRepository, technicians TechnicianDirectory) *Service {
	return &Service{rooms: rooms, technicians: technicians}
}

type UpsertRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity" validate:"required,gt=0"`
	PIC         string   `json:"pic"`
	Facilities  []string `json:"facilities"`
	ImageURL    string   `json:"image_url"`
	CalendarID  string   `json:"calendar_id"`
}

func (s *Service) checkPIC(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	techs, err := s.technicians.ListActiveTechnicians(ctx)
	if err != nil {
		return err
	}
	for _, t := range techs {
		if t.Name == name {
			return nil
		}
	}
	return ErrUnknownPIC
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (*domain.Room, error) {
	if violations := validator.Validate(req); violations != nil {
		return nil, ErrValidation
	}
	if err := s.checkPIC(ctx, req.PIC); err != nil {
		return nil, err
	}

	room := &domain.Room{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		PIC:         req.PIC,
		Facilities:  req.Facilities,
		ImageURL:    req.ImageURL,
		CalendarID:  req.CalendarID,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertRequest) (*domain.Room, error) {
	if violations := validator.Validate(req); violations != nil {
		return nil, ErrValidation
	}
	if err := s.checkPIC(ctx, req.PIC); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	room.Name = req.Name
	room.Description = req.Description
	room.Capacity = req.Capacity
	room.PIC = req.PIC
	room.Facilities = req.Facilities
	room.ImageURL = req.ImageURL
	room.CalendarID = req.CalendarID

	if err := s.rooms.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.rooms.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) List(ctx context.Context, search, sortBy string) ([]domain.Room, error) {
	return s.rooms.List(ctx, search, sortBy)
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"silab/internal/domain"
)

var ErrNotFound = errors.New("record not found")

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Capacity    int       `gorm:"column:capacity"`
	PIC         string    `gorm:"column:pic"`
	Facilities  string    `gorm:"column:facilities;type:text"`
	ImageURL    string    `gorm:"column:image_url"`
	CalendarID  string    `gorm:"column:calendar_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	var facilities []string
	if m.Facilities != "" {
		_ = json.Unmarshal([]byte(m.Facilities), &facilities)
	}

	return &domain.Room{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Capacity:    m.Capacity,
		PIC:         m.PIC,
		Facilities:  facilities,
		ImageURL:    m.ImageURL,
		CalendarID:  m.CalendarID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	var facilities string
	if len(r.Facilities) > 0 {
		b, _ := json.Marshal(r.Facilities)
		facilities = string(b)
	}

	return roomModel{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		PIC:         r.PIC,
		Facilities:  facilities,
		ImageURL:    r.ImageURL,
		CalendarID:  r.CalendarID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Model(&roomModel{}).Where("id = ?", m.ID).
		Select("name", "description", "capacity", "pic", "facilities", "image_url", "calendar_id").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&roomModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

// List returns rooms matching the search term, sorted by name or capacity.
func (r *RoomRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&roomModel{}).Count(&n)
	return n, tx.Error
}

func (r *RoomRepository) List(ctx context.Context, search, sortBy string) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Model(&roomModel{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if sortBy == "capacity" {
		q = q.Order("capacity DESC")
	} else {
		q = q.Order("name ASC")
	}

	var rows []roomModel
	if tx := q.Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

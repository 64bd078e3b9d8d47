package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"silab/internal/domain"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

type equipmentModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Code      string    `gorm:"column:code;uniqueIndex"`
	Category  string    `gorm:"column:category"`
	Condition string    `gorm:"column:condition"`
	Available bool      `gorm:"column:available"`
	ImageURL  string    `gorm:"column:image_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (equipmentModel) TableName() string { return "equipment" }

func toDomainEquipment(m equipmentModel) *domain.Equipment {
	return &domain.Equipment{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		Category:  m.Category,
		Condition: domain.EquipmentCondition(m.Condition),
		Available: m.Available,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toEquipmentModel(e *domain.Equipment) equipmentModel {
	return equipmentModel{
		ID:        e.ID,
		Name:      e.Name,
		Code:      e.Code,
		Category:  e.Category,
		Condition: string(e.Condition),
		Available: e.Available,
		ImageURL:  e.ImageURL,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	m := toEquipmentModel(e)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*e = *toDomainEquipment(m)
	return nil
}

func (r *EquipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	m := toEquipmentModel(e)
	tx := r.db.WithContext(ctx).Model(&equipmentModel{}).Where("id = ?", m.ID).
		Select("name", "code", "category", "condition", "available", "image_url").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&equipmentModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	var m equipmentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainEquipment(m), nil
}

type EquipmentFilter struct {
	Search        string
	Category      string
	Condition     domain.EquipmentCondition
	OnlyAvailable bool
}

func (r *EquipmentRepository) List(ctx context.Context, f EquipmentFilter) ([]domain.Equipment, error) {
	q := r.db.WithContext(ctx).Model(&equipmentModel{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR code LIKE ?", like, like)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Condition != "" {
		q = q.Where("condition = ?", string(f.Condition))
	}
	if f.OnlyAvailable {
		q = q.Where("available = ?", true)
	}

	var rows []equipmentModel
	if tx := q.Order("name ASC").Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Equipment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainEquipment(m))
	}
	return out, nil
}

// Counts returns total and currently available equipment for the dashboard.
func (r *EquipmentRepository) Counts(ctx context.Context) (total, available int64, err error) {
	if tx := r.db.WithContext(ctx).Model(&equipmentModel{}).Count(&total); tx.Error != nil {
		return 0, 0, tx.Error
	}
	tx := r.db.WithContext(ctx).Model(&equipmentModel{}).Where("available = ?", true).Count(&available)
	if tx.Error != nil {
		return 0, 0, tx.Error
	}
	return total, available, nil
}

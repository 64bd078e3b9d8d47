package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"silab/internal/domain"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

type staffModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	NIP       string    `gorm:"column:nip;uniqueIndex"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	Type      string    `gorm:"column:type"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (staffModel) TableName() string { return "staff" }

func toDomainStaff(m staffModel) *domain.Staff {
	return &domain.Staff{
		ID:        m.ID,
		Name:      m.Name,
		NIP:       m.NIP,
		Email:     m.Email,
		Phone:     m.Phone,
		Type:      domain.StaffType(m.Type),
		Status:    domain.StaffStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toStaffModel(s *domain.Staff) staffModel {
	return staffModel{
		ID:     s.ID,
		Name:   s.Name,
		NIP:    s.NIP,
		Email:  s.Email,
		Phone:  s.Phone,
		Type:   string(s.Type),
		Status: string(s.Status),
	}
}

func (r *StaffRepository) Create(ctx context.Context, s *domain.Staff) error {
	m := toStaffModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainStaff(m)
	return nil
}

func (r *StaffRepository) Update(ctx context.Context, s *domain.Staff) error {
	m := toStaffModel(s)
	tx := r.db.WithContext(ctx).Model(&staffModel{}).Where("id = ?", m.ID).
		Select("name", "nip", "email", "phone", "type", "status").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&staffModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	var m staffModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainStaff(m), nil
}

func (r *StaffRepository) List(ctx context.Context, search string) ([]domain.Staff, error) {
	q := r.db.WithContext(ctx).Model(&staffModel{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR nip LIKE ? OR email LIKE ?", like, like, like)
	}

	var rows []staffModel
	if tx := q.Order("name ASC").Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Staff, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainStaff(m))
	}
	return out, nil
}

// ListActiveTechnicians returns the staff eligible to be a room PIC.
func (r *StaffRepository) ListActiveTechnicians(ctx context.Context) ([]domain.Staff, error) {
	var rows []staffModel
	tx := r.db.WithContext(ctx).
		Where("type = ? AND status = ?", string(domain.StaffTechnician), string(domain.StaffActive)).
		Order("name ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Staff, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainStaff(m))
	}
	return out, nil
}

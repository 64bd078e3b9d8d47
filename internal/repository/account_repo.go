package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"silab/internal/domain"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

type accountModel struct {
	ID         int64      `gorm:"column:id;primaryKey"`
	Name       string     `gorm:"column:name"`
	Email      string     `gorm:"column:email;uniqueIndex"`
	Role       string     `gorm:"column:role"`
	Identifier string     `gorm:"column:identifier;uniqueIndex"`
	Department string     `gorm:"column:department"`
	Status     string     `gorm:"column:status"`
	LastLogin  *time.Time `gorm:"column:last_login"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "accounts" }

func toDomainAccount(m accountModel) *domain.Account {
	return &domain.Account{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Role:       domain.AccountRole(m.Role),
		Identifier: m.Identifier,
		Department: m.Department,
		Status:     domain.AccountStatus(m.Status),
		LastLogin:  m.LastLogin,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toAccountModel(a *domain.Account) accountModel {
	return accountModel{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Role:       string(a.Role),
		Identifier: a.Identifier,
		Department: a.Department,
		Status:     string(a.Status),
		LastLogin:  a.LastLogin,
	}
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	m := toAccountModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAccount(m)
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, a *domain.Account) error {
	m := toAccountModel(a)
	tx := r.db.WithContext(ctx).Model(&accountModel{}).Where("id = ?", m.ID).
		Select("name", "email", "role", "identifier", "department", "status").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&accountModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var m accountModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainAccount(m), nil
}

type AccountFilter struct {
	Search string
	Role   domain.AccountRole
	Status domain.AccountStatus
}

func (r *AccountRepository) List(ctx context.Context, f AccountFilter) ([]domain.Account, error) {
	q := r.db.WithContext(ctx).Model(&accountModel{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR identifier LIKE ?", like, like, like)
	}
	if f.Role != "" {
		q = q.Where("role = ?", string(f.Role))
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var rows []accountModel
	if tx := q.Order("name ASC").Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Account, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainAccount(m))
	}
	return out, nil
}

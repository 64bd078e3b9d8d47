package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"silab/internal/domain"
)

type LoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

type loanTransactionModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	Ref            string    `gorm:"column:ref;uniqueIndex"`
	BorrowerName   string    `gorm:"column:borrower_name"`
	OfficerName    string    `gorm:"column:officer_name"`
	GuaranteeType  string    `gorm:"column:guarantee_type"`
	GuaranteeNo    string    `gorm:"column:guarantee_no"`
	BorrowedAt     time.Time `gorm:"column:borrowed_at"`
	ExpectedReturn time.Time `gorm:"column:expected_return"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (loanTransactionModel) TableName() string { return "loan_transactions" }

type loanItemModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	TransactionID int64      `gorm:"column:transaction_id;index"`
	EquipmentID   int64      `gorm:"column:equipment_id;index"`
	EquipmentName string     `gorm:"column:equipment_name"`
	Status        string     `gorm:"column:status;index"`
	ReturnedAt    *time.Time `gorm:"column:returned_at"`
}

func (loanItemModel) TableName() string { return "loan_items" }

func toDomainLoanTx(m loanTransactionModel, items []loanItemModel) *domain.LoanTransaction {
	out := &domain.LoanTransaction{
		ID:             m.ID,
		Ref:            m.Ref,
		BorrowerName:   m.BorrowerName,
		OfficerName:    m.OfficerName,
		GuaranteeType:  m.GuaranteeType,
		GuaranteeNo:    m.GuaranteeNo,
		BorrowedAt:     m.BorrowedAt,
		ExpectedReturn: m.ExpectedReturn,
		CreatedAt:      m.CreatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, *toDomainLoanItem(it))
	}
	return out
}

func toDomainLoanItem(m loanItemModel) *domain.LoanItem {
	return &domain.LoanItem{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		EquipmentID:   m.EquipmentID,
		EquipmentName: m.EquipmentName,
		Status:        domain.LoanItemStatus(m.Status),
		ReturnedAt:    m.ReturnedAt,
	}
}

// Open creates the transaction with its items and marks every borrowed
// equipment row unavailable, atomically.
func (r *LoanRepository) Open(ctx context.Context, lt *domain.LoanTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := loanTransactionModel{
			Ref:            lt.Ref,
			BorrowerName:   lt.BorrowerName,
			OfficerName:    lt.OfficerName,
			GuaranteeType:  lt.GuaranteeType,
			GuaranteeNo:    lt.GuaranteeNo,
			BorrowedAt:     lt.BorrowedAt,
			ExpectedReturn: lt.ExpectedReturn,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		lt.ID = m.ID
		lt.CreatedAt = m.CreatedAt

		for i := range lt.Items {
			it := loanItemModel{
				TransactionID: m.ID,
				EquipmentID:   lt.Items[i].EquipmentID,
				EquipmentName: lt.Items[i].EquipmentName,
				Status:        string(domain.LoanBorrowed),
			}
			if err := tx.Create(&it).Error; err != nil {
				return err
			}
			lt.Items[i] = *toDomainLoanItem(it)

			res := tx.Model(&equipmentModel{}).
				Where("id = ? AND available = ?", it.EquipmentID, true).
				Update("available", false)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrEquipmentUnavailable
			}
		}
		return nil
	})
}

var ErrEquipmentUnavailable = errors.New("equipment is not available")

func (r *LoanRepository) GetItem(ctx context.Context, itemID int64) (*domain.LoanItem, error) {
	var m loanItemModel
	tx := r.db.WithContext(ctx).First(&m, itemID)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainLoanItem(m), nil
}

func (r *LoanRepository) GetTransaction(ctx context.Context, id int64) (*domain.LoanTransaction, error) {
	var m loanTransactionModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}

	var items []loanItemModel
	if tx := r.db.WithContext(ctx).Where("transaction_id = ?", m.ID).Find(&items); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainLoanTx(m, items), nil
}

// ReturnItem closes one line item and frees its equipment, atomically. The
// status must be returned or late; picking between the two is the service's
// call.
func (r *LoanRepository) ReturnItem(ctx context.Context, itemID int64, status domain.LoanItemStatus, returnedAt time.Time) (*domain.LoanItem, error) {
	var m loanItemModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if m.Status != string(domain.LoanBorrowed) {
			return ErrAlreadyReturned
		}

		if err := tx.Model(&loanItemModel{}).Where("id = ?", itemID).
			Updates(map[string]any{
				"status":      string(status),
				"returned_at": returnedAt,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&equipmentModel{}).Where("id = ?", m.EquipmentID).
			Update("available", true).Error; err != nil {
			return err
		}

		m.Status = string(status)
		m.ReturnedAt = &returnedAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDomainLoanItem(m), nil
}

var ErrAlreadyReturned = errors.New("loan item is not outstanding")

// DeleteItem removes a line item; a still-borrowed item frees its equipment
// first.
func (r *LoanRepository) DeleteItem(ctx context.Context, itemID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m loanItemModel
		if err := tx.First(&m, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if m.Status == string(domain.LoanBorrowed) {
			if err := tx.Model(&equipmentModel{}).Where("id = ?", m.EquipmentID).
				Update("available", true).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&loanItemModel{}, itemID).Error
	})
}

type LoanFilter struct {
	Status domain.LoanItemStatus
	Search string
}

// List returns transactions with their items, newest first. The status filter
// keeps a transaction when any of its items matches.
func (r *LoanRepository) List(ctx context.Context, f LoanFilter) ([]domain.LoanTransaction, error) {
	q := r.db.WithContext(ctx).Model(&loanTransactionModel{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("borrower_name LIKE ? OR ref LIKE ?", like, like)
	}

	var txs []loanTransactionModel
	if tx := q.Order("borrowed_at DESC").Find(&txs); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.LoanTransaction, 0, len(txs))
	for _, m := range txs {
		itemQ := r.db.WithContext(ctx).Where("transaction_id = ?", m.ID)
		var items []loanItemModel
		if tx := itemQ.Find(&items); tx.Error != nil {
			return nil, tx.Error
		}

		if f.Status != "" {
			matched := false
			for _, it := range items {
				if it.Status == string(f.Status) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, *toDomainLoanTx(m, items))
	}
	return out, nil
}

// CountOutstanding returns borrowed and late item counts for the dashboard.
func (r *LoanRepository) CountOutstanding(ctx context.Context) (borrowed, late int64, err error) {
	if tx := r.db.WithContext(ctx).Model(&loanItemModel{}).
		Where("status = ?", string(domain.LoanBorrowed)).Count(&borrowed); tx.Error != nil {
		return 0, 0, tx.Error
	}
	tx := r.db.WithContext(ctx).Model(&loanItemModel{}).
		Where("status = ?", string(domain.LoanLate)).Count(&late)
	if tx.Error != nil {
		return 0, 0, tx.Error
	}
	return borrowed, late, nil
}

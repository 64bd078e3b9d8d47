package domain

import "time"

type LoanItemStatus string

const (
	LoanBorrowed LoanItemStatus = "borrowed"
	LoanReturned LoanItemStatus = "returned"
	LoanLate     LoanItemStatus = "late"
)

// LoanTransaction groups the items one borrower takes out in a single visit.
// It replaces the old habit of reconstructing groups from a
// borrower+timestamp composite key.
type LoanTransaction struct {
	ID             int64     `json:"id"`
	Ref            string    `json:"ref"`
	BorrowerName   string    `json:"borrower_name" validate:"required"`
	OfficerName    string    `json:"officer_name" validate:"required"`
	GuaranteeType  string    `json:"guarantee_type" validate:"required"`
	GuaranteeNo    string    `json:"guarantee_no,omitempty"`
	BorrowedAt     time.Time `json:"borrowed_at"`
	ExpectedReturn time.Time `json:"expected_return"`
	CreatedAt      time.Time `json:"created_at"`

	Items []LoanItem `json:"items,omitempty" gorm:"foreignKey:TransactionID"`
}

type LoanItem struct {
	ID            int64          `json:"id"`
	TransactionID int64          `json:"transaction_id"`
	EquipmentID   int64          `json:"equipment_id" validate:"required"`
	EquipmentName string         `json:"equipment_name"`
	Status        LoanItemStatus `json:"status"`
	ReturnedAt    *time.Time     `json:"returned_at,omitempty"`

	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
}

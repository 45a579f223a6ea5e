package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanPayment is an append-only payment record. The engine only reads
// payments made between the first of the current month and now to test
// whether the expected monthly payment was covered.
type LoanPayment struct {
	ID          int64           `json:"id"`
	LoanID      int64           `json:"loan_id"`
	PaymentDate time.Time       `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount"`
}

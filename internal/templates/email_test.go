package templates

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gunneryarms/loan-notifier/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testLoan() *domain.Loan {
	return &domain.Loan{
		ID:               1,
		InvoiceNumber:    "2024-0042",
		LoanAmount:       d("9000"),
		RemainingBalance: d("6000"),
		Status:           domain.LoanStatusActive,
		PaymentDueDate:   time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
		ClientID:         7,
	}
}

func testClient() *domain.Client {
	return &domain.Client{ID: 7, FirstName: "Jan", LastName: "Botha", Email: "jan@example.com"}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"3000", "3,000.00"},
		{"1234.5", "1,234.50"},
		{"1234567.89", "1,234,567.89"},
		{"999.99", "999.99"},
		{"-1500", "-1,500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(d(tt.in)))
		})
	}
}

func TestStatement(t *testing.T) {
	loan := testLoan()
	client := testClient()
	licence := &domain.GunLicence{Make: "CZ", Type: "P-10 C", Caliber: "9mm"}

	body, err := Statement(loan, client, licence, true, "")
	require.NoError(t, err)

	assert.Contains(t, body, "Dear Jan Botha,")
	assert.Contains(t, body, "CZ P-10 C 9mm")
	assert.Contains(t, body, "R 9,000.00", "loan amount")
	assert.Contains(t, body, "R 6,000.00", "remaining balance")
	assert.Contains(t, body, "QUO2024-0042", "bank reference carries the invoice number")
	assert.Contains(t, body, "September 28, 2026", "due date normalized to the 28th")
	assert.NotContains(t, body, "Payment Breakdown", "no penalty block without penalties")

	t.Run("RenderedPaymentAmountIsExact", func(t *testing.T) {
		// The displayed payment must re-parse to the cent
		re := regexp.MustCompile(`Payment Amount</div>\s*<div[^>]*>R ([\d,]+\.\d{2})`)
		m := re.FindStringSubmatch(body)
		require.Len(t, m, 2, "payment amount not found in rendered statement")

		got := d(strings.ReplaceAll(m[1], ",", ""))
		assert.True(t, d("3000").Equal(got), "expected 3000.00, got %s", got)
	})
}

func TestStatement_PaidInvoice(t *testing.T) {
	loan := testLoan()
	loan.RemainingBalance = decimal.Zero

	body, err := Statement(loan, testClient(), nil, false, "")
	require.NoError(t, err)

	assert.Contains(t, body, "paid in full")
	assert.Contains(t, body, "Gunnery Payment Confirmation: 2024-0042")
	assert.Contains(t, body, "Firearm Loan", "nil licence falls back to the generic item name")
}

func TestStatement_WithPenalties(t *testing.T) {
	loan := testLoan()
	loan.Penalties = d("900")

	body, err := Statement(loan, testClient(), nil, true, "")
	require.NoError(t, err)

	assert.Contains(t, body, "Payment Breakdown")
	assert.Contains(t, body, "R 900.00", "accumulated penalties")
	assert.Contains(t, body, "R 90.00", "10% surcharge on penalties")
	assert.Contains(t, body, "Total Due: R 3,990.00")
}

func TestStatement_DepositLine(t *testing.T) {
	loan := testLoan()
	cost := d("12000")
	loan.WeaponCost = &cost

	body, err := Statement(loan, testClient(), nil, true, "")
	require.NoError(t, err)
	assert.Contains(t, body, "R 3,000.00", "deposit is weapon cost minus loan amount")
}

func TestStatement_BannerPrepended(t *testing.T) {
	loan := testLoan()
	banner := ReminderBanner(d("3000"), time.Date(2026, time.September, 28, 0, 0, 0, 0, time.UTC))

	body, err := Statement(loan, testClient(), nil, true, banner)
	require.NoError(t, err)

	bannerAt := strings.Index(body, "PAYMENT REMINDER")
	logoAt := strings.Index(body, "gunnery_logo.png")
	require.True(t, bannerAt >= 0 && logoAt >= 0)
	assert.Less(t, bannerAt, logoAt, "banner renders above the header")
}

func TestOverdueBanner(t *testing.T) {
	t.Run("PenaltyNotYetApplied", func(t *testing.T) {
		loan := testLoan()
		banner := string(OverdueBanner(loan, decimal.Zero, d("3000")))

		assert.Contains(t, banner, "OVERDUE PAYMENT NOTICE")
		assert.Contains(t, banner, "#d9534f")
		assert.Contains(t, banner, "will be applied if payment is not received by the 3rd")
		assert.Contains(t, banner, "R 900.00", "future penalty is 10% of the loan amount")
		assert.Contains(t, banner, "No payments were received this month")
	})

	t.Run("PenaltyAlreadyApplied", func(t *testing.T) {
		loan := testLoan()
		loan.Penalties = d("900")
		banner := string(OverdueBanner(loan, d("1000"), d("3000")))

		assert.Contains(t, banner, "has been applied to your account")
		assert.Contains(t, banner, "R 1,000.00")
	})
}

func TestDueDateBanner(t *testing.T) {
	due := time.Date(2026, time.September, 28, 0, 0, 0, 0, time.UTC)

	t.Run("DueToday", func(t *testing.T) {
		banner := string(DueDateBanner(d("3000"), decimal.Zero, due, 0))
		assert.Contains(t, banner, "URGENT: PAYMENT DUE TODAY")
		assert.Contains(t, banner, "#d9534f")
	})

	t.Run("DueTomorrow", func(t *testing.T) {
		banner := string(DueDateBanner(d("3000"), decimal.Zero, due, 1))
		assert.Contains(t, banner, "URGENT: PAYMENT DUE TOMORROW")
		assert.Contains(t, banner, "#d9534f")
	})

	t.Run("DueLater", func(t *testing.T) {
		banner := string(DueDateBanner(d("3000"), d("1500"), due, 5))
		assert.Contains(t, banner, "PAYMENT DUE IN 5 DAYS")
		assert.Contains(t, banner, "#f0ad4e")
		assert.Contains(t, banner, "additional payment of R 1,500.00")
	})
}

func TestPaymentInfoLine(t *testing.T) {
	assert.Contains(t, PaymentInfoLine(decimal.Zero, d("3000")), "No payments were received")
	assert.Contains(t, PaymentInfoLine(d("3000"), d("3000")), "Thank you for your payment")
	assert.Contains(t, PaymentInfoLine(d("2000"), d("3000")), "additional payment of R 1,000.00")
}

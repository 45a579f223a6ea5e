package jobs

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/gunneryarms/loan-notifier/internal/domain"
)

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) ListActiveDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListActiveDueBetween(ctx context.Context, from, to time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListOverdue(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) MarkOverdue(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}
func (m *MockLoanRepo) AddPenalty(ctx context.Context, loanID int64, totalPenalties decimal.Decimal, appliedAt time.Time) error {
	args := m.Called(ctx, loanID, totalPenalties, appliedAt)
	return args.Error(0)
}
func (m *MockLoanRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockClientRepo
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) ListForLoanBetween(ctx context.Context, loanID int64, from, to time.Time) ([]domain.LoanPayment, error) {
	args := m.Called(ctx, loanID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanPayment), args.Error(1)
}
func (m *MockPaymentRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockLicenceRepo
type MockLicenceRepo struct {
	mock.Mock
}

func (m *MockLicenceRepo) GetByID(ctx context.Context, id int64) (*domain.GunLicence, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GunLicence), args.Error(1)
}
func (m *MockLicenceRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// recordingSender captures outbound emails instead of delivering them.
type recordingSender struct {
	sent []sentEmail
	err  error
}

type sentEmail struct {
	Recipient string
	Subject   string
	Body      string
}

func (s *recordingSender) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{Recipient: recipient, Subject: subject, Body: htmlBody})
	return nil
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/gunneryarms/loan-notifier/internal/domain"
	"github.com/gunneryarms/loan-notifier/internal/logger"
	"github.com/gunneryarms/loan-notifier/internal/repository"
	"github.com/gunneryarms/loan-notifier/internal/retry"
)

type clientRepository struct {
	db     *sql.DB
	policy retry.Policy
}

func NewClientRepository(db *sql.DB, policy retry.Policy) repository.ClientRepository {
	return &clientRepository{db: db, policy: policy}
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	logger.EnterMethod("clientRepository.GetByID", "clientID", id)

	query := `SELECT id, first_name, last_name, email, COALESCE(phone, '') FROM clients WHERE id = $1`
	c := &domain.Client{}
	err := r.policy.Do(ctx, "clientRepository.GetByID", func() error {
		return r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone)
	})
	if err != nil {
		logger.ExitMethodWithError("clientRepository.GetByID", err, "clientID", id)
		return nil, err
	}

	logger.ExitMethod("clientRepository.GetByID", "clientID", id)
	return c, nil
}

func (r *clientRepository) CountAll(ctx context.Context) (int64, error) {
	return countTable(ctx, r.db, r.policy, "clients")
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/gunneryarms/loan-notifier/internal/domain"
	"github.com/gunneryarms/loan-notifier/internal/logger"
	"github.com/gunneryarms/loan-notifier/internal/repository"
	"github.com/gunneryarms/loan-notifier/internal/retry"
)

type licenceRepository struct {
	db     *sql.DB
	policy retry.Policy
}

func NewLicenceRepository(db *sql.DB, policy retry.Policy) repository.LicenceRepository {
	return &licenceRepository{db: db, policy: policy}
}

func (r *licenceRepository) GetByID(ctx context.Context, id int64) (*domain.GunLicence, error) {
	logger.EnterMethod("licenceRepository.GetByID", "licenceID", id)

	query := `SELECT id, COALESCE(make, ''), COALESCE(type, ''), COALESCE(caliber, ''), COALESCE(serial_number, '')
	          FROM gun_licences WHERE id = $1`
	g := &domain.GunLicence{}
	err := r.policy.Do(ctx, "licenceRepository.GetByID", func() error {
		return r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Make, &g.Type, &g.Caliber, &g.SerialNumber)
	})
	if err != nil {
		logger.ExitMethodWithError("licenceRepository.GetByID", err, "licenceID", id)
		return nil, err
	}

	logger.ExitMethod("licenceRepository.GetByID", "licenceID", id)
	return g, nil
}

func (r *licenceRepository) CountAll(ctx context.Context) (int64, error) {
	return countTable(ctx, r.db, r.policy, "gun_licences")
}

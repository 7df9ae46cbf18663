package postgres

import (
	"context"

	"markeep/internal/domain/entity"
	domainerrors "markeep/internal/domain/errors"
	"markeep/internal/domain/repository"
	"markeep/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// refreshSessionRepository implements the domain's RefreshSessionRepository interface.
type refreshSessionRepository struct {
	db *gorm.DB
}

// NewRefreshSessionRepository is the constructor for refreshSessionRepository.
func NewRefreshSessionRepository(db *gorm.DB) repository.RefreshSessionRepository {
	return &refreshSessionRepository{db: db}
}

// Upsert replaces the session token for the account, creating the record if
// absent. INSERT ... ON CONFLICT keeps it a single round trip, idempotent for
// the same (accountID, token) pair and last-write-wins under concurrent
// logins, with no possibility of a partial write.
func (repo *refreshSessionRepository) Upsert(ctx context.Context, accountID uuid.UUID, token string) error {
	sessionM := &model.RefreshSessionModel{
		AccountID: accountID,
		Token:     token,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
		}).
		Create(sessionM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountNotFound.WrapMessage("refresh session references unknown account")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert refresh session")
	}

	return nil
}

// Get looks up the session for an account. Absence is reported through
// repository.ErrSessionNotFound and is not a failure for probing callers.
func (repo *refreshSessionRepository) Get(ctx context.Context, accountID uuid.UUID) (*entity.RefreshSession, error) {
	var sessionM model.RefreshSessionModel

	if err := repo.db.WithContext(ctx).First(&sessionM, "account_id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toRefreshSessionDomain(&sessionM), nil
}

// Delete revokes the session for an account.
func (repo *refreshSessionRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Delete(&model.RefreshSessionModel{}, "account_id = ?", accountID)
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

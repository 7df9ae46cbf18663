package postgres

import (
	"context"

	"markeep/internal/domain/entity"
	domainerrors "markeep/internal/domain/errors"
	"markeep/internal/domain/repository"

	"gorm.io/gorm"
)

// folderRepository implements the domain's FolderRepository interface.
type folderRepository struct {
	db *gorm.DB
}

// NewFolderRepository is the constructor for folderRepository.
func NewFolderRepository(db *gorm.DB) repository.FolderRepository {
	return &folderRepository{db: db}
}

// Create persists a new folder and assigns its id.
func (repo *folderRepository) Create(ctx context.Context, folder *entity.Folder) error {
	folderM := fromFolderDomain(folder)

	if err := repo.db.WithContext(ctx).Create(folderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountNotFound.WrapMessage("folder references unknown account")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create folder")
	}

	folder.ID = folderM.ID
	folder.CreatedAt = folderM.CreatedAt

	return nil
}

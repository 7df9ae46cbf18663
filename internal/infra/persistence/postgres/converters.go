package postgres

import (
	"markeep/internal/domain/entity"
	"markeep/internal/infra/persistence/model"
)

func toAccountDomain(m *model.AccountModel) *entity.Account {
	return &entity.Account{
		ID:           m.ID,
		Email:        m.Email,
		Nickname:     m.Nickname,
		PasswordHash: m.PasswordHash,
		Role:         entity.RoleFromString(m.Role),
		AutoLogin:    m.AutoLogin,
		RefreshToken: m.RefreshToken,
		ProfileImage: m.ProfileImage,
		JoinedAt:     m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromAccountDomain(a *entity.Account) *model.AccountModel {
	return &model.AccountModel{
		ID:           a.ID,
		Email:        a.Email,
		Nickname:     a.Nickname,
		PasswordHash: a.PasswordHash,
		Role:         a.Role.String(),
		AutoLogin:    a.AutoLogin,
		RefreshToken: a.RefreshToken,
		ProfileImage: a.ProfileImage,
		CreatedAt:    a.JoinedAt,
	}
}

func toRefreshSessionDomain(m *model.RefreshSessionModel) *entity.RefreshSession {
	return &entity.RefreshSession{
		AccountID: m.AccountID,
		Token:     m.Token,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromFolderDomain(f *entity.Folder) *model.FolderModel {
	return &model.FolderModel{
		ID:        f.ID,
		AccountID: f.AccountID,
		Title:     f.Title,
		CreatedAt: f.CreatedAt,
	}
}

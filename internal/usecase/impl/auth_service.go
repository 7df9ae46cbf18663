// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"markeep/internal/domain/entity"
	domainerrors "markeep/internal/domain/errors"
	"markeep/internal/domain/repository"
	"markeep/internal/domain/service"
	"markeep/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// placeholderPasswordHash marks provider-only accounts. It is not a valid
// bcrypt hash, so a password check against it can never succeed.
const placeholderPasswordHash = "oauth:no-local-password"

// authMethod distinguishes the login paths for the refresh-token policy.
type authMethod int

const (
	methodLocal authMethod = iota
	methodOAuth
)

// issueRefreshToken is the single decision point for whether a login path
// establishes a renewable session. Local logins always do; OAuth logins only
// when the user asked to stay signed in.
func issueRefreshToken(method authMethod, autoLogin bool) bool {
	if method == methodLocal {
		return true
	}

	return autoLogin
}

// authService implements the AuthUsecase interface.
type authService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	sessionRepo repository.RefreshSessionRepository
	hasher      service.PasswordHasher
	codec       service.TokenCodec
	providers   map[entity.Provider]service.IdentityProvider
	logger      *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	SessionRepo repository.RefreshSessionRepository
	Hasher      service.PasswordHasher
	Codec       service.TokenCodec
	Providers   []service.IdentityProvider `group:"identity_providers"`
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	providers := make(map[entity.Provider]service.IdentityProvider, len(params.Providers))
	for _, p := range params.Providers {
		providers[p.Provider()] = p
	}

	return &authService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		sessionRepo: params.SessionRepo,
		hasher:      params.Hasher,
		codec:       params.Codec,
		providers:   providers,
		logger:      params.Logger,
	}
}

// Login authenticates a local password credential and establishes a session.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.logger.Debug("Starting local login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.logger.Warn("Login failed: email not registered", slog.String("email", input.Email))

			return nil, domainerrors.ErrNotRegistered.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// bcrypt comparison is CPU-bound; it runs outside any transaction.
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.logger.Warn("Login failed: password mismatch", slog.String("email", input.Email))

		return nil, domainerrors.ErrBadCredentials.WrapMessage("login failed")
	}

	// The access token carries the requested autoLogin flag, not the stored
	// preference.
	accessToken, err := srv.codec.IssueAccess(account, input.AutoLogin)
	if err != nil {
		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("failed to issue access token")
	}

	refreshToken := ""
	if issueRefreshToken(methodLocal, input.AutoLogin) {
		refreshToken, err = srv.codec.IssueRefresh()
		if err != nil {
			return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("failed to issue refresh token")
		}
	}

	if err := srv.persistSession(ctx, account, input.AutoLogin, refreshToken); err != nil {
		srv.logger.Warn("Login failed: session persistence", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist login session")
	}

	srv.logger.Debug("Local login succeeded", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{
		ID:           account.ID,
		Email:        account.Email,
		Nickname:     account.Nickname,
		AutoLogin:    input.AutoLogin,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// persistSession rotates the refresh session and writes the account's updated
// autoLogin preference and refresh-token field in one transaction, preserving
// id, password hash and join date.
func (srv *authService) persistSession(ctx context.Context, account *entity.Account, autoLogin bool, refreshToken string) error {
	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if refreshToken != "" {
			if err := repos.SessionRepo().Upsert(ctx, account.ID, refreshToken); err != nil {
				return errors.Wrap(err, "failed to upsert refresh session")
			}
		}

		account.AutoLogin = autoLogin
		if refreshToken != "" {
			account.RefreshToken = refreshToken
		}

		if err := repos.AccountRepo().Save(ctx, account); err != nil {
			return errors.Wrap(err, "failed to save account session state")
		}

		return nil
	})
}

// Join registers a new account together with its default folder. Both writes
// share one transaction: either both commit or neither does.
func (srv *authService) Join(ctx context.Context, input *usecase.JoinInput) error {
	srv.logger.Info("Starting registration", slog.String("email", input.Email))

	duplicate, err := srv.accountRepo.Exists(ctx, input.Email)
	if err != nil {
		return errors.Wrap(err, "failed to check email duplication")
	}
	if duplicate {
		srv.logger.Warn("Registration rejected: duplicate email", slog.String("email", input.Email))

		return domainerrors.ErrDuplicateEmail.WrapMessage("registration rejected")
	}

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	role := input.Role
	if !role.IsValid() {
		role = entity.RoleUser
	}

	account := &entity.Account{
		Email:        input.Email,
		Nickname:     input.Nickname,
		PasswordHash: hashed,
		Role:         role,
	}

	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.AccountRepo().Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create account during registration")
		}

		folder := &entity.Folder{
			AccountID: account.ID,
			Title:     entity.DefaultFolderTitle,
		}
		if err := repos.FolderRepo().Create(ctx, folder); err != nil {
			return errors.Wrap(err, "failed to create default folder during registration")
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return err
	}

	srv.logger.Debug("Registration completed", slog.Any("accountID", account.ID))

	return nil
}

// IsDuplicate reports whether the email already has an account.
func (srv *authService) IsDuplicate(ctx context.Context, email string) (bool, error) {
	duplicate, err := srv.accountRepo.Exists(ctx, email)
	if err != nil {
		return false, errors.Wrap(err, "failed to check email duplication")
	}

	return duplicate, nil
}

// OAuthLogin reconciles an external provider identity with a local account.
// The provider exchange runs outside the transaction; the four-way matrix of
// {email exists / not} x {autoLogin / not} runs inside it.
func (srv *authService) OAuthLogin(ctx context.Context, input *usecase.OAuthLoginInput) (*usecase.LoginOutput, error) {
	srv.logger.Debug("Starting OAuth login", slog.String("provider", input.Provider.String()))

	provider, ok := srv.providers[input.Provider]
	if !ok {
		return nil, domainerrors.ErrProviderUnknown.WrapMessage("no client for provider " + input.Provider.String())
	}

	profile, err := provider.FetchProfile(ctx, service.ProviderLogin{
		Code:     input.Code,
		Email:    input.Email,
		Nickname: input.Nickname,
	})
	if err != nil {
		srv.logger.Warn("OAuth profile fetch failed",
			slog.String("provider", input.Provider.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to fetch provider profile")
	}

	withRefresh := issueRefreshToken(methodOAuth, input.AutoLogin)

	refreshToken := ""
	if withRefresh {
		refreshToken, err = srv.codec.IssueRefresh()
		if err != nil {
			return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("failed to issue refresh token")
		}
	}

	var account *entity.Account
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		account, err = srv.reconcileProviderAccount(ctx, repos, profile, input.AutoLogin, refreshToken)

		return err
	})
	if err != nil {
		srv.logger.Error("Failed to execute OAuth login transaction",
			slog.String("provider", input.Provider.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute oauth login transaction")
	}

	accessToken, err := srv.codec.IssueAccess(account, input.AutoLogin)
	if err != nil {
		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("failed to issue access token")
	}

	srv.logger.Debug("OAuth login succeeded",
		slog.String("provider", input.Provider.String()), slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{
		ID:           account.ID,
		Email:        account.Email,
		Nickname:     account.Nickname,
		AutoLogin:    input.AutoLogin,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// reconcileProviderAccount binds a provider identity to a local account:
// create-on-first-login or update-on-repeat-login, keyed by email. Repeat
// logins touch only the autoLogin flag and, when requested, the refresh
// token; every other field is left exactly as stored.
func (srv *authService) reconcileProviderAccount(
	ctx context.Context,
	repos repository.RepositoryFactory,
	profile *service.Profile,
	autoLogin bool,
	refreshToken string,
) (*entity.Account, error) {
	accountRepo := repos.AccountRepo()

	account, err := accountRepo.FindByEmail(ctx, profile.Email)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to resolve provider email")
	}

	if errors.Is(err, repository.ErrAccountNotFound) {
		srv.logger.Info("Provider identity unknown, creating account", slog.String("email", profile.Email))

		account = &entity.Account{
			Email:        profile.Email,
			Nickname:     profile.Nickname,
			PasswordHash: placeholderPasswordHash,
			Role:         entity.RoleUser,
			AutoLogin:    autoLogin,
			RefreshToken: refreshToken,
		}
		if err := accountRepo.Create(ctx, account); err != nil {
			return nil, errors.Wrap(err, "failed to create provider account")
		}
	} else {
		account.AutoLogin = autoLogin
		if refreshToken != "" {
			account.RefreshToken = refreshToken
		}
		if err := accountRepo.Save(ctx, account); err != nil {
			return nil, errors.Wrap(err, "failed to update provider account")
		}
	}

	if refreshToken != "" {
		if err := repos.SessionRepo().Upsert(ctx, account.ID, refreshToken); err != nil {
			return nil, errors.Wrap(err, "failed to upsert provider refresh session")
		}
	}

	return account, nil
}

// Renew exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated here.
func (srv *authService) Renew(ctx context.Context, input *usecase.RenewInput) (*usecase.RenewOutput, error) {
	srv.logger.Debug("Attempting access token renewal", slog.Any("accountID", input.AccountID))

	session, err := srv.sessionRepo.Get(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrSessionNotFound.WrapMessage("renewal rejected")
		}

		return nil, errors.Wrap(err, "failed to load refresh session")
	}

	if subtle.ConstantTimeCompare([]byte(session.Token), []byte(input.RefreshToken)) != 1 {
		srv.logger.Warn("Renewal rejected: refresh token mismatch", slog.Any("accountID", input.AccountID))

		return nil, domainerrors.ErrSessionMismatch.WrapMessage("renewal rejected")
	}

	account, err := srv.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account for renewal")
	}

	accessToken, err := srv.codec.IssueAccess(account, account.AutoLogin)
	if err != nil {
		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("failed to issue renewed access token")
	}

	return &usecase.RenewOutput{AccessToken: accessToken}, nil
}

// Logout revokes the account's renewable session. Revoking an account that
// has no session is a no-op, so logout is idempotent.
func (srv *authService) Logout(ctx context.Context, accountID uuid.UUID) error {
	srv.logger.Info("Logging out", slog.Any("accountID", accountID))

	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.SessionRepo().Delete(ctx, accountID); err != nil &&
			!errors.Is(err, repository.ErrSessionNotFound) {
			return errors.Wrap(err, "failed to delete refresh session")
		}

		account, err := repos.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("logout rejected")
			}

			return errors.Wrap(err, "failed to load account for logout")
		}

		account.RefreshToken = ""
		if err := repos.AccountRepo().Save(ctx, account); err != nil {
			return errors.Wrap(err, "failed to clear account refresh token")
		}

		return nil
	})
}

// UpdatePassword replaces the account's password hash. This is the only flow
// that mutates the hash; logins never do.
func (srv *authService) UpdatePassword(ctx context.Context, input *usecase.PasswordUpdateInput) error {
	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrNotRegistered.WrapMessage("password update rejected")
		}

		return errors.Wrap(err, "failed to load account for password update")
	}

	hashed, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
	}

	account.PasswordHash = hashed
	if err := srv.accountRepo.Save(ctx, account); err != nil {
		return errors.Wrap(err, "failed to save new password")
	}

	srv.logger.Info("Password updated", slog.Any("accountID", account.ID))

	return nil
}

// IsTokenExpired reports whether an access token is expired or invalid.
func (srv *authService) IsTokenExpired(token string) bool {
	return srv.codec.IsExpired(token)
}

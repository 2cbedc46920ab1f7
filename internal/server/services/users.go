package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/psemenov/passvault/internal/common"
	"github.com/psemenov/passvault/internal/cryptox"
	"github.com/psemenov/passvault/internal/dbx"
	"github.com/psemenov/passvault/internal/server/models"
	"github.com/psemenov/passvault/internal/server/repositories/repomanager"
)

// defaultVaultName is the vault created for every new user.
const defaultVaultName = "Personal"

// UserService handles registration and credential verification.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m, now: time.Now}
}

// Register creates a user and their default vault in one transaction, so a
// user can never exist without a vault to put items in. A duplicate email
// fails with ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created

		vault := &models.Vault{
			ID:          uuid.NewString(),
			Name:        defaultVaultName,
			OwnerID:     user.ID,
			KeyMaterial: common.GenerateRandByteArray(vaultKeyMaterialSize),
		}
		_, err = s.repomanager.Vaults(tx).Create(ctx, vault)
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies a user's credentials. Unknown emails and bad passwords both
// fail with ErrorUnauthorized, as does a user whose two-factor flag and
// stored secret disagree; that inconsistency is detected, never repaired.
// When two-factor is enabled the placeholder code scheme must also pass.
func (s *UserService) Login(ctx context.Context, email, password, twoFactorCode string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !cryptox.VerifyPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	if !user.TwoFactorConsistent() {
		return nil, common.ErrorUnauthorized
	}

	if user.TwoFactorEnabled {
		if !cryptox.VerifyTwoFactorCode(*user.TwoFactorSecret, twoFactorCode, s.now()) {
			return nil, common.ErrorUnauthorized
		}
	}

	return user, nil
}

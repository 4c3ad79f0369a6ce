// Package services contains server-side business logic. UserService is the
// session issuer: it registers users, checks credentials and mints and
// verifies session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tasktracker/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

// Session is a user together with a freshly minted token.
type Session struct {
	User  *models.User
	Token string
}

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
	dummyHash             []byte
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Compared against on unknown emails so both login paths pay for one bcrypt run.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("tasktracker-dummy-password"), cost)

	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cost,
		dummyHash:             dummy,
	}
}

// Register creates a user and returns it with a new token.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = validator.NormalizeEmail(email)

	v := validator.New()
	v.CheckName(name)
	v.CheckEmail(email)
	v.CheckPassword(password)
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.newSession(user)
}

// Login checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = validator.NormalizeEmail(email)

	v := validator.New()
	v.CheckEmail(email)
	v.Check(password != "", "password", "Password is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.newSession(user)
}

// Verify returns the user id bound to token.
func (s *UserService) Verify(ctx context.Context, token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// Me loads the user behind a verified token. A user that no longer exists
// is reported as unauthorized.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies only the supplied fields. A new password is hashed
// before storage.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.User, error) {
	v := validator.New()
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
		v.CheckName(name)
	}
	if patch.Email != nil {
		email := validator.NormalizeEmail(*patch.Email)
		patch.Email = &email
		v.CheckEmail(email)
	}
	if patch.Password != nil {
		v.CheckPassword(*patch.Password)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	var hash []byte
	if patch.Password != nil {
		var err error
		if hash, err = s.hashPassword(*patch.Password); err != nil {
			return nil, err
		}
	}

	var updated *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error loading user: %w", err)
		}

		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Email != nil {
			user.Email = *patch.Email
		}
		if hash != nil {
			user.PasswordHash = hash
		}

		updated, err = repo.Update(ctx, user)
		if err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *UserService) hashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	return hash, nil
}

func (s *UserService) newSession(user *models.User) (*Session, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}

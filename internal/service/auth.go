package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/kingpotter-hr/full9-website/internal/auth"
	"github.com/kingpotter-hr/full9-website/internal/metrics"
	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/kingpotter-hr/full9-website/internal/repository"
	"github.com/oklog/ulid/v2"
)

// ClaimTokenID is the unique id added to every login token.
const ClaimTokenID = "jti"

// dummyPasswordHash is checked when the email is unknown so both login
// failures cost one Argon2id verification.
var dummyPasswordHash = sync.OnceValue(func() string {
	hash, err := auth.HashPassword("full9-unknown-admin")
	if err != nil {
		return ""
	}
	return hash
})

// Revoker records tokens that must no longer be accepted.
type Revoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
}

// AdminView is the admin identity returned to API clients.
type AdminView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      AdminView `json:"user"`
}

// AuthService handles admin login and password management.
type AuthService struct {
	admins  repository.AdminStore
	issuer  *auth.Issuer
	revoker Revoker
	metrics metrics.Recorder
	logger  *slog.Logger

	checkPassword func(password, hash string) (ok, needsRehash bool, err error)
}

// NewAuthService creates an AuthService. revoker may be nil when revocation is disabled.
func NewAuthService(admins repository.AdminStore, issuer *auth.Issuer, revoker Revoker, recorder metrics.Recorder, logger *slog.Logger) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		admins:  admins,
		issuer:  issuer,
		revoker: revoker,
		metrics: recorder,
		logger:  logger.With("component", "service.auth"),

		checkPassword: auth.CheckPassword,
	}
}

// Login verifies credentials and issues a token. Emails are matched
// lowercased. Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		s.metrics.IncLogin("invalid")
		return nil, ErrInvalidCredentials
	}

	admin, err := s.admins.GetAdminByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		_, _, _ = s.checkPassword(password, dummyPasswordHash())
		s.metrics.IncLogin("invalid")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.metrics.IncLogin("error")
		return nil, fmt.Errorf("get admin: %w", err)
	}

	ok, needsRehash, err := s.checkPassword(password, admin.PasswordHash)
	if err != nil {
		s.metrics.IncLogin("error")
		return nil, fmt.Errorf("check password for admin %d: %w", admin.ID, err)
	}
	if !ok {
		s.metrics.IncLogin("invalid")
		return nil, ErrInvalidCredentials
	}

	if needsRehash {
		s.upgradeHash(ctx, admin.ID, password)
	}

	// A per-token id keeps same-second logins distinct for revocation.
	claims := admin.Claims()
	claims[ClaimTokenID] = ulid.Make().String()

	token, err := s.issuer.Issue(claims)
	if err != nil {
		s.metrics.IncLogin("error")
		return nil, fmt.Errorf("issue token: %w", err)
	}

	cred, err := s.issuer.Verify(token)
	if err != nil {
		s.metrics.IncLogin("error")
		return nil, fmt.Errorf("verify issued token: %w", err)
	}

	s.metrics.IncLogin("success")
	return &LoginResult{
		Token:     token,
		ExpiresAt: cred.ExpiresAt,
		User:      viewOf(admin),
	}, nil
}

// upgradeHash replaces a legacy bcrypt hash. Failure is logged, not returned.
func (s *AuthService) upgradeHash(ctx context.Context, adminID int64, password string) {
	hash, err := auth.HashPassword(password)
	if err == nil {
		err = s.admins.UpdateAdminPassword(ctx, adminID, hash)
	}
	if err != nil {
		s.logger.Warn("legacy password hash upgrade failed", "admin_id", adminID, "error", err)
		return
	}
	s.logger.Info("legacy password hash upgraded", "admin_id", adminID)
}

// Me returns the identity carried by a verified credential.
func (s *AuthService) Me(cred *auth.Credential) (AdminView, error) {
	id, err := cred.Subject()
	if err != nil {
		return AdminView{}, err
	}
	return AdminView{
		ID:    id,
		Email: cred.String("email"),
		Name:  cred.String("name"),
	}, nil
}

// ChangePassword updates the password of the admin the credential belongs to.
// Previously issued tokens stay valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, cred *auth.Credential, current, next string) error {
	id, err := cred.Subject()
	if err != nil {
		return err
	}
	if len([]rune(next)) < auth.MinPasswordLength {
		return ErrPasswordTooShort
	}

	admin, err := s.admins.GetAdminByID(ctx, id)
	if err != nil {
		return storeErr("get admin", err)
	}

	ok, _, err := auth.CheckPassword(current, admin.PasswordHash)
	if err != nil {
		return fmt.Errorf("check password for admin %d: %w", id, err)
	}
	if !ok {
		return ErrWrongPassword
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.admins.UpdateAdminPassword(ctx, id, hash); err != nil {
		return storeErr("update password", err)
	}

	s.logger.Info("admin password changed", "admin_id", id)
	return nil
}

// Logout revokes the token when revocation is enabled. It reports whether
// the token was revoked.
func (s *AuthService) Logout(ctx context.Context, token string, cred *auth.Credential) (bool, error) {
	if s.revoker == nil {
		return false, nil
	}
	if err := s.revoker.Revoke(ctx, token, cred.ExpiresAt); err != nil {
		return false, fmt.Errorf("revoke token: %w", err)
	}
	return true, nil
}

func viewOf(a *model.Admin) AdminView {
	return AdminView{ID: a.ID, Email: a.Email, Name: a.Name}
}

// Package identity owns credential storage rules: user creation with
// password-policy validation, bcrypt hashing, sign-in with lockout
// tracking, purpose-scoped email tokens and role membership. The account
// orchestrator drives it but never touches hashes or counters directly.
package identity

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/freshmarket/market-api/internal/domain"
	"github.com/freshmarket/market-api/internal/domain/entity"
	"github.com/freshmarket/market-api/internal/domain/repository"
	"github.com/freshmarket/market-api/pkg/token"
)

// SignInResult is the disjoint outcome of a password sign-in attempt.
type SignInResult int

const (
	SignInSuccess SignInResult = iota
	SignInRequiresTwoFactor
	SignInLockedOut
	SignInInvalidCredentials
)

// Config token settings for the identity service.
type Config struct {
	Secret             string
	Issuer             string
	SessionExpMinutes  int
	EmailTokenExpHours int
}

// Service implements the identity rules over the user store.
type Service struct {
	users   repository.UserRepository
	history repository.PasswordHistoryRepository
	cfg     Config

	// Now is the clock; tests may replace it.
	Now func() time.Time
}

// NewService builds the identity service.
func NewService(users repository.UserRepository, history repository.PasswordHistoryRepository, cfg Config) *Service {
	return &Service{users: users, history: history, cfg: cfg, Now: time.Now}
}

// ValidatePassword checks the password policy and returns every violated
// rule as a human-readable message. Empty slice means the password passes.
func ValidatePassword(password string) []string {
	var errs []string
	if len(password) < 6 {
		errs = append(errs, "Passwords must be at least 6 characters.")
	}
	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		default:
			hasSymbol = true
		}
	}
	if !hasDigit {
		errs = append(errs, "Passwords must have at least one digit ('0'-'9').")
	}
	if !hasLower {
		errs = append(errs, "Passwords must have at least one lowercase ('a'-'z').")
	}
	if !hasUpper {
		errs = append(errs, "Passwords must have at least one uppercase ('A'-'Z').")
	}
	if !hasSymbol {
		errs = append(errs, "Passwords must have at least one non alphanumeric character.")
	}
	return errs
}

// CreateUser validates the request against the identity rules and persists
// the user. Policy and uniqueness violations come back as the validation
// slice; only infrastructure problems surface as error. Creation is atomic:
// on any failure no partial state is left behind.
func (s *Service) CreateUser(ctx context.Context, username, email, password string) (*entity.User, []string, error) {
	var validation []string
	email = strings.TrimSpace(email)
	if email == "" {
		validation = append(validation, "Email is required.")
	} else if _, err := mail.ParseAddress(email); err != nil {
		validation = append(validation, fmt.Sprintf("Email '%s' is invalid.", email))
	}
	if username == "" {
		validation = append(validation, "Username is required.")
	}
	validation = append(validation, ValidatePassword(password)...)
	if len(validation) > 0 {
		return nil, validation, nil
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, []string{fmt.Sprintf("Email '%s' is already taken.", email)}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	now := s.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if err == domain.ErrEmailAlreadyExists {
			return nil, []string{fmt.Sprintf("Email '%s' is already taken.", email)}, nil
		}
		return nil, nil, err
	}
	if err := s.recordPasswordHistory(ctx, user); err != nil {
		return nil, nil, err
	}
	return user, nil, nil
}

// PasswordSignIn verifies the credential with lockout tracking. Outcomes
// are checked in the fixed order: lockout, credential, two-factor.
func (s *Service) PasswordSignIn(ctx context.Context, user *entity.User, password string) (SignInResult, error) {
	now := s.Now()
	if user.LockedOut(now) {
		return SignInLockedOut, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		user.AccessFailedCount++
		if user.AccessFailedCount >= entity.MaxAccessFailures {
			user.LockoutEnd = now.Add(entity.LockoutWindow)
			user.AccessFailedCount = 0
			user.UpdatedAt = now
			if err := s.users.Update(ctx, user); err != nil {
				return SignInInvalidCredentials, err
			}
			return SignInLockedOut, nil
		}
		user.UpdatedAt = now
		if err := s.users.Update(ctx, user); err != nil {
			return SignInInvalidCredentials, err
		}
		return SignInInvalidCredentials, nil
	}

	if user.TwoFactorEnabled {
		return SignInRequiresTwoFactor, nil
	}

	if user.AccessFailedCount > 0 || !user.LockoutEnd.IsZero() {
		user.AccessFailedCount = 0
		user.LockoutEnd = time.Time{}
		user.UpdatedAt = now
		if err := s.users.Update(ctx, user); err != nil {
			return SignInSuccess, err
		}
	}
	return SignInSuccess, nil
}

// GenerateConfirmationToken mints an email-confirmation token bound to the
// user's address.
func (s *Service) GenerateConfirmationToken(user *entity.User) (string, error) {
	return token.GenerateEmail(s.cfg.Secret, user.Email, token.PurposeConfirmEmail, s.cfg.Issuer, s.cfg.EmailTokenExpHours)
}

// GenerateResetToken mints a password-reset token bound to the user's address.
func (s *Service) GenerateResetToken(user *entity.User) (string, error) {
	return token.GenerateEmail(s.cfg.Secret, user.Email, token.PurposePasswordReset, s.cfg.Issuer, s.cfg.EmailTokenExpHours)
}

// ConfirmEmail validates the confirmation token against the user and flips
// the confirmed flag. A token issued for another address never confirms.
func (s *Service) ConfirmEmail(ctx context.Context, user *entity.User, rawToken string) error {
	if err := token.ValidateEmail(s.cfg.Secret, rawToken, user.Email, token.PurposeConfirmEmail); err != nil {
		return domain.ErrInvalidToken
	}
	if user.EmailConfirmed {
		return nil // idempotent: confirming twice is a no-op
	}
	user.EmailConfirmed = true
	user.UpdatedAt = s.Now()
	return s.users.Update(ctx, user)
}

// ResetPassword validates the reset token and the new password, rehashes
// the credential, snapshots it into the history and clears any lockout.
func (s *Service) ResetPassword(ctx context.Context, user *entity.User, rawToken, newPassword string) ([]string, error) {
	if err := token.ValidateEmail(s.cfg.Secret, rawToken, user.Email, token.PurposePasswordReset); err != nil {
		return nil, domain.ErrInvalidToken
	}
	if validation := ValidatePassword(newPassword); len(validation) > 0 {
		return validation, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.AccessFailedCount = 0
	user.LockoutEnd = time.Time{}
	user.UpdatedAt = s.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return nil, s.recordPasswordHistory(ctx, user)
}

// AssignRole sets the user's role. The role must belong to the closed set.
func (s *Service) AssignRole(ctx context.Context, user *entity.User, role string) error {
	if !entity.ValidRole(role) {
		return domain.ErrInvalidInput
	}
	user.Role = role
	user.UpdatedAt = s.Now()
	return s.users.Update(ctx, user)
}

// GenerateSessionToken mints the Bearer credential returned at login.
func (s *Service) GenerateSessionToken(user *entity.User) (string, error) {
	return token.GenerateSession(s.cfg.Secret, user.ID, user.Email, user.Role, s.cfg.Issuer, s.cfg.SessionExpMinutes)
}

func (s *Service) recordPasswordHistory(ctx context.Context, user *entity.User) error {
	return s.history.Append(ctx, &entity.PasswordHistory{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		PasswordHash: user.PasswordHash,
		CreatedAt:    s.Now(),
	})
}

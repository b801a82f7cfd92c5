// Package account orchestrates the registration, email-confirmation, login
// and password-reset flows: it validates requests, drives the identity
// service in a fixed sequence per use case, renders the outgoing email and
// hands it to the notification queue, and maps every result onto a tagged
// success/failure outcome.
package account

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/freshmarket/market-api/internal/application/dto"
	"github.com/freshmarket/market-api/internal/application/identity"
	"github.com/freshmarket/market-api/internal/domain"
	"github.com/freshmarket/market-api/internal/domain/entity"
	"github.com/freshmarket/market-api/pkg/logger"
)

// Client-facing messages. Login failures for unknown email and wrong
// password share one message on purpose: responses must not reveal
// whether an address is registered.
const (
	MsgRegistered         = "Registered Successfully. Please check your email to confirm your account."
	MsgEmailTokenRequired = "Email and Token are required."
	MsgUserNotFound       = "User not found."
	MsgEmailConfirmed     = "Email confirmed successfully!"
	MsgConfirmFailed      = "Error confirming your email."
	MsgCredentialsInvalid = "Please check your credentials and try again."
	MsgEmailNotConfirmed  = "Email not confirmed yet."
	MsgTwoFactorRequired  = "Two-factor authentication required."
	MsgLockedOut          = "Account locked out due to multiple failed login attempts."
	MsgLoginSuccess       = "Login successful."
	MsgForgotFailed       = "User with this email does not exist or email is not confirmed."
	MsgResetEmailSent     = "Password reset email sent. Please check your inbox."
	MsgPasswordReset      = "Password has been reset successfully."
	MsgResetTokenInvalid  = "Invalid or expired reset token."
)

// Notifier queues an HTML email for asynchronous delivery. Enqueue returns
// once the job is accepted; delivery failures surface only in worker logs.
type Notifier interface {
	Enqueue(ctx context.Context, to, subject, htmlBody string) error
}

// Options toggles the registration feature variants that used to exist as
// copy-pasted controller revisions.
type Options struct {
	AssignRole            bool // honor the optional role field on register
	SendConfirmationEmail bool // send the confirmation email on register
}

// Config external URLs and template location for outgoing emails.
type Config struct {
	PublicURL   string // base URL of this API (confirmation links)
	FrontendURL string // base URL of the SPA (reset links)
	TemplateDir string // directory holding confirmation_email.html
}

// UseCase is the account orchestrator.
type UseCase struct {
	identity *identity.Service
	users    userFinder
	notifier Notifier
	cfg      Config
	opts     Options
	log      *logger.Logger
}

// userFinder is the slice of the user repository the orchestrator reads.
type userFinder interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// NewUseCase builds the orchestrator.
func NewUseCase(idn *identity.Service, users userFinder, notifier Notifier, cfg Config, opts Options, log *logger.Logger) *UseCase {
	return &UseCase{identity: idn, users: users, notifier: notifier, cfg: cfg, opts: opts, log: log}
}

// Register creates the user, optionally assigns the requested role and
// dispatches the confirmation email. Identity validation errors come back
// as a ClassValidation failure carrying the full error list.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.MessageResponse, *Failure) {
	if uc.opts.AssignRole && in.Role != "" && !entity.ValidRole(in.Role) {
		return nil, failValidationList([]string{fmt.Sprintf("Role '%s' does not exist.", in.Role)})
	}

	user, validation, err := uc.identity.CreateUser(ctx, in.Username, in.Email, in.Password)
	if err != nil {
		uc.log.Error().Err(err).Msg("account: user creation failed")
		return nil, failInternal()
	}
	if len(validation) > 0 {
		uc.log.Warn().Strs("errors", validation).Msg("account: registration rejected")
		return nil, failValidationList(validation)
	}

	if uc.opts.AssignRole && in.Role != "" {
		if err := uc.identity.AssignRole(ctx, user, in.Role); err != nil {
			uc.log.Error().Err(err).Str("role", in.Role).Msg("account: role assignment failed")
			return nil, failInternal()
		}
	}

	if uc.opts.SendConfirmationEmail {
		if fail := uc.sendConfirmationEmail(ctx, user); fail != nil {
			return nil, fail
		}
	}

	return &dto.MessageResponse{Message: MsgRegistered}, nil
}

func (uc *UseCase) sendConfirmationEmail(ctx context.Context, user *entity.User) *Failure {
	tok, err := uc.identity.GenerateConfirmationToken(user)
	if err != nil {
		uc.log.Error().Err(err).Msg("account: confirmation token generation failed")
		return failInternal()
	}
	link := fmt.Sprintf("%s/api/accounts/confirmemail?email=%s&token=%s",
		strings.TrimRight(uc.cfg.PublicURL, "/"), url.QueryEscape(user.Email), url.QueryEscape(tok))
	uc.log.Info().Str("email", user.Email).Msg("account: generated confirmation link")

	body, err := uc.renderConfirmationTemplate(link)
	if err != nil {
		uc.log.Error().Err(err).Msg("account: confirmation template unavailable")
		return failDependency()
	}
	if err := uc.notifier.Enqueue(ctx, user.Email, "Email Confirmation", body); err != nil {
		uc.log.Error().Err(err).Str("to", user.Email).Msg("account: confirmation email enqueue failed")
		return failDependency()
	}
	return nil
}

// renderConfirmationTemplate loads the HTML template from disk and
// substitutes the link, like the rest of the outgoing mail surface.
func (uc *UseCase) renderConfirmationTemplate(link string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(uc.cfg.TemplateDir, "confirmation_email.html"))
	if err != nil {
		return "", fmt.Errorf("read confirmation template: %w", err)
	}
	return strings.ReplaceAll(string(raw), "{{confirmationLink}}", link), nil
}

// ConfirmEmail validates the token against the user found by email and
// flips the confirmed flag. A token issued for a different address fails
// and never confirms anything.
func (uc *UseCase) ConfirmEmail(ctx context.Context, rawToken, email string) (*dto.MessageResponse, *Failure) {
	if rawToken == "" || email == "" {
		return nil, failValidation(MsgEmailTokenRequired)
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		uc.log.Error().Err(err).Msg("account: confirm email lookup failed")
		return nil, failInternal()
	}
	if user == nil {
		return nil, &Failure{Class: ClassNotFound, Message: MsgUserNotFound}
	}

	// Tolerate tokens that arrive still URL-encoded.
	tok := rawToken
	if decoded, err := url.QueryUnescape(rawToken); err == nil {
		tok = decoded
	}

	if err := uc.identity.ConfirmEmail(ctx, user, tok); err != nil {
		if err == domain.ErrInvalidToken {
			uc.log.Warn().Str("email", email).Msg("account: invalid confirmation token")
			return nil, failValidation(MsgConfirmFailed)
		}
		uc.log.Error().Err(err).Msg("account: confirm email failed")
		return nil, failInternal()
	}
	uc.log.Info().Str("email", email).Msg("account: email confirmed")
	return &dto.MessageResponse{Message: MsgEmailConfirmed}, nil
}

// Login resolves the four disjoint sign-in outcomes in order: success,
// two-factor required, locked out, invalid credentials. Unknown email and
// wrong password yield the identical generic message.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, *Failure) {
	if in.Email == "" || in.Password == "" {
		return nil, failValidation("Email and Password are required.")
	}

	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error().Err(err).Msg("account: login lookup failed")
		return nil, failInternal()
	}
	if user == nil {
		uc.log.Warn().Str("email", in.Email).Msg("account: login attempt for unknown email")
		return nil, &Failure{Class: ClassUnauthorized, Message: MsgCredentialsInvalid}
	}
	if !user.EmailConfirmed {
		uc.log.Warn().Str("email", in.Email).Msg("account: login attempt with unconfirmed email")
		return nil, &Failure{Class: ClassUnauthorized, Message: MsgEmailNotConfirmed}
	}

	result, err := uc.identity.PasswordSignIn(ctx, user, in.Password)
	if err != nil {
		uc.log.Error().Err(err).Msg("account: sign-in failed")
		return nil, failInternal()
	}
	switch result {
	case identity.SignInSuccess:
		sessionToken, err := uc.identity.GenerateSessionToken(user)
		if err != nil {
			uc.log.Error().Err(err).Msg("account: session token generation failed")
			return nil, failInternal()
		}
		uc.log.Info().Str("user_id", user.ID).Msg("account: login successful")
		return &dto.LoginResponse{
			Message:   MsgLoginSuccess,
			UserEmail: user.Email,
			UserID:    user.ID,
			Role:      user.Role,
			Token:     sessionToken,
		}, nil
	case identity.SignInRequiresTwoFactor:
		uc.log.Warn().Str("user_id", user.ID).Msg("account: two-factor required")
		return nil, &Failure{Class: ClassTwoFactor, Message: MsgTwoFactorRequired}
	case identity.SignInLockedOut:
		uc.log.Warn().Str("user_id", user.ID).Msg("account: user locked out")
		return nil, &Failure{Class: ClassLockedOut, Message: MsgLockedOut}
	default:
		uc.log.Warn().Str("user_id", user.ID).Msg("account: invalid login attempt")
		return nil, &Failure{Class: ClassUnauthorized, Message: MsgCredentialsInvalid}
	}
}

// ForgotPassword dispatches a reset email. Unknown and unconfirmed
// addresses fail with the identical message so the endpoint cannot be used
// to probe which emails exist.
func (uc *UseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) (*dto.MessageResponse, *Failure) {
	if in.Email == "" {
		return nil, failValidation("Email is required.")
	}
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error().Err(err).Msg("account: forgot password lookup failed")
		return nil, failInternal()
	}
	if user == nil || !user.EmailConfirmed {
		uc.log.Warn().Str("email", in.Email).Msg("account: forgot password for unknown or unconfirmed email")
		return nil, failValidation(MsgForgotFailed)
	}

	tok, err := uc.identity.GenerateResetToken(user)
	if err != nil {
		uc.log.Error().Err(err).Msg("account: reset token generation failed")
		return nil, failInternal()
	}
	resetLink := fmt.Sprintf("%s/password?email=%s&token=%s",
		strings.TrimRight(uc.cfg.FrontendURL, "/"), url.QueryEscape(user.Email), url.QueryEscape(tok))

	body := fmt.Sprintf(resetPasswordEmailTemplate, resetLink)
	if err := uc.notifier.Enqueue(ctx, user.Email, "Reset Password", body); err != nil {
		uc.log.Error().Err(err).Str("to", user.Email).Msg("account: reset email enqueue failed")
		return nil, failDependency()
	}
	uc.log.Info().Str("email", user.Email).Msg("account: password reset email queued")
	return &dto.MessageResponse{Message: MsgResetEmailSent}, nil
}

// ResetPassword applies a reset token. Policy violations on the new
// password come back as a validation failure with the full list.
func (uc *UseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) (*dto.MessageResponse, *Failure) {
	if in.Email == "" || in.Token == "" || in.NewPassword == "" {
		return nil, failValidation("Email, Token and NewPassword are required.")
	}
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error().Err(err).Msg("account: reset password lookup failed")
		return nil, failInternal()
	}
	if user == nil {
		// Same shape as a bad token: the endpoint must not reveal which
		// addresses exist.
		return nil, failValidation(MsgResetTokenInvalid)
	}

	tok := in.Token
	if decoded, err := url.QueryUnescape(in.Token); err == nil {
		tok = decoded
	}

	validation, err := uc.identity.ResetPassword(ctx, user, tok, in.NewPassword)
	if err != nil {
		if err == domain.ErrInvalidToken {
			uc.log.Warn().Str("email", in.Email).Msg("account: invalid reset token")
			return nil, failValidation(MsgResetTokenInvalid)
		}
		uc.log.Error().Err(err).Msg("account: reset password failed")
		return nil, failInternal()
	}
	if len(validation) > 0 {
		return nil, failValidationList(validation)
	}
	uc.log.Info().Str("user_id", user.ID).Msg("account: password reset")
	return &dto.MessageResponse{Message: MsgPasswordReset}, nil
}

// resetPasswordEmailTemplate is the fixed reset email body; the single
// placeholder is the reset link.
const resetPasswordEmailTemplate = `
    <h1>Password reset for FRESH FRUITS & VEGGIES</h1>
    <h3>Hi</h3>
    <p>We received a request to reset the password for your account associated with this email address. If you did not make this request, please ignore this email.</p>
    <div style='padding: 0 0 10px;'>
        <h4>To reset your password, please click the button below:</h4>
        <a href='%s'
        style='
            padding: 10px 15px;
            border-radius: 4px;
            margin: 10px auto;
            background-color: #20682b;
            color: #fff;
            height: 40px;
            text-decoration: none;'
        >Reset Password
        </a>
    </div>
    <p>This link will expire in 24 hours. If you encounter any issues, please reach out to our support team.</p>
    <p>Thank you,</p>
    <p>Best regards,</p>
    <p>The FRESH FRUITS & VEGGIES Team</p>`

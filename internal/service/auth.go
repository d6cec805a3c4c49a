package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"stallhub/internal/auth"
	"stallhub/internal/database"
	"stallhub/internal/logging"
	"stallhub/internal/mail"
	"stallhub/internal/model"
	"stallhub/internal/monitor"
	"stallhub/internal/repository"
)

// SignupInput is a customer registration.
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// InviteInput grants Role to the account for Email, creating it when needed,
// and emails an account setup link.
type InviteInput struct {
	Email        string
	Name         string
	Role         model.RoleAssignment
	BusinessName string
}

// AuthResult is returned by every successful login.
type AuthResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// AuthOptions tune magic links.
type AuthOptions struct {
	BaseURL      string
	MagicLinkTTL time.Duration
	MaxAttempts  int
}

// Inviter is the part of AuthService other services use to onboard staff.
type Inviter interface {
	Invite(ctx context.Context, in InviteInput) (*model.User, error)
}

// AuthService covers signup, password and passwordless login, and account setup.
type AuthService interface {
	Inviter
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// RequestMagicLink emails a login link and code when email belongs to an active user.
	// It reports success either way so callers cannot probe for accounts.
	RequestMagicLink(ctx context.Context, email string) error
	VerifyMagicLink(ctx context.Context, token string) (*AuthResult, error)
	VerifyCode(ctx context.Context, email, code string) (*AuthResult, error)
	Me(ctx context.Context, p model.Principal) (*model.User, error)
	// SetPassword requires the current password when the account already has one.
	SetPassword(ctx context.Context, p model.Principal, current, next string) error
	// PurgeExpiredLinks deletes magic links that can no longer be redeemed.
	PurgeExpiredLinks(ctx context.Context) (int64, error)
}

type authService struct {
	users   repository.UserRepository
	links   repository.MagicLinkRepository
	tx      database.TxManager
	tokens  *auth.TokenIssuer
	mailer  mail.Mailer
	opts    AuthOptions
	metrics *monitor.Metrics
	logger  *logging.Logger
	now     func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(
	users repository.UserRepository,
	links repository.MagicLinkRepository,
	tx database.TxManager,
	tokens *auth.TokenIssuer,
	mailer mail.Mailer,
	opts AuthOptions,
	metrics *monitor.Metrics,
	logger *logging.Logger,
) AuthService {
	if opts.MagicLinkTTL <= 0 {
		opts.MagicLinkTTL = 15 * time.Minute
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{
		users: users, links: links, tx: tx, tokens: tokens, mailer: mailer,
		opts: opts, metrics: metrics, logger: logger, now: utcNow,
	}
}

func (s *authService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, invalid("%s", err.Error())
		}
		return nil, err
	}

	now := s.now()
	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Roles:        []model.RoleAssignment{{Role: model.RoleCustomer}},
		Active:       true,
		LastLoginAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, duplicate(err, "email is already registered")
	}

	s.logger.Info("user_signed_up", map[string]any{"user_id": u.ID})
	return s.session(u)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !u.Active {
		return nil, ErrAccountDisabled
	}

	now := s.now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *authService) RequestMagicLink(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			s.logger.Info("magic_link_unknown_email", nil)
			return nil
		}
		return err
	}
	if !u.Active {
		return nil
	}

	msg, err := s.issueLink(ctx, u, model.MagicLinkLogin, "")
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		// The caller still gets a success response so delivery failures do not reveal the account.
		s.logger.Error("magic_link_send_failed", err, map[string]any{"user_id": u.ID})
		return nil
	}
	s.metrics.MagicLinkSent(string(model.MagicLinkLogin))
	return nil
}

func (s *authService) VerifyMagicLink(ctx context.Context, token string) (*AuthResult, error) {
	if token == "" {
		return nil, ErrTokenInvalid
	}
	ml, err := s.links.FindByTokenHash(ctx, auth.HashSecret(token))
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	if !ml.Usable(s.now(), s.opts.MaxAttempts) {
		return nil, ErrTokenInvalid
	}
	return s.redeem(ctx, ml)
}

func (s *authService) VerifyCode(ctx context.Context, email, code string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || code == "" {
		return nil, ErrTokenInvalid
	}
	ml, err := s.links.FindLatestUnused(ctx, email)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	if !ml.Usable(s.now(), s.opts.MaxAttempts) {
		return nil, ErrTokenInvalid
	}
	// Every guess claims an attempt before the comparison, correct or not.
	if err := s.links.IncrementAttempts(ctx, ml.ID, s.opts.MaxAttempts); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(auth.HashSecret(code)), []byte(ml.CodeHash)) != 1 {
		return nil, ErrTokenInvalid
	}
	return s.redeem(ctx, ml)
}

// redeem consumes the link and signs the user in. A concurrent redemption of
// the same link leaves only one winner.
func (s *authService) redeem(ctx context.Context, ml *model.MagicLink) (*AuthResult, error) {
	var u *model.User
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		now := s.now()
		if err := s.links.MarkUsed(ctx, ml.ID, now); err != nil {
			if errors.Is(err, repository.ErrStale) {
				return ErrTokenInvalid
			}
			return err
		}

		var err error
		u, err = s.users.FindByID(ctx, ml.UserID)
		if err != nil {
			if errors.Is(notFound(err), ErrNotFound) {
				return ErrTokenInvalid
			}
			return err
		}
		if !u.Active {
			return ErrAccountDisabled
		}

		u.EmailVerified = true
		u.LastLoginAt = &now
		u.UpdatedAt = now
		return s.users.Update(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *authService) Me(ctx context.Context, p model.Principal) (*model.User, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (s *authService) SetPassword(ctx context.Context, p model.Principal, current, next string) error {
	if err := requireUser(p); err != nil {
		return err
	}
	u, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return notFound(err)
	}
	if u.HasPassword() && !auth.CheckPassword(current, u.PasswordHash) {
		return ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return invalid("%s", err.Error())
		}
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = s.now()
	return s.users.Update(ctx, u)
}

func (s *authService) Invite(ctx context.Context, in InviteInput) (*model.User, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if !in.Role.Validate() {
		return nil, invalid("role %q is not valid for the given scope", in.Role.Role)
	}

	now := s.now()
	u, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if u.GrantRole(in.Role) {
			u.UpdatedAt = now
			if err := s.users.Update(ctx, u); err != nil {
				return nil, err
			}
		}
	case errors.Is(notFound(err), ErrNotFound):
		name := strings.TrimSpace(in.Name)
		if name == "" {
			name = strings.SplitN(email, "@", 2)[0]
		}
		u = &model.User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      name,
			Roles:     []model.RoleAssignment{in.Role},
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, duplicate(err, "email is already registered")
		}
	default:
		return nil, err
	}

	msg, err := s.issueLink(ctx, u, model.MagicLinkSetup, in.BusinessName)
	if err != nil {
		return nil, err
	}
	userID := u.ID
	database.AfterCommit(ctx, func() {
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.logger.Error("invite_send_failed", err, map[string]any{"user_id": userID})
			return
		}
		s.metrics.MagicLinkSent(string(model.MagicLinkSetup))
	})

	s.logger.Info("user_invited", map[string]any{
		"user_id":     u.ID,
		"role":        in.Role.Role,
		"business_id": in.Role.BusinessID,
	})
	return u, nil
}

func (s *authService) PurgeExpiredLinks(ctx context.Context) (int64, error) {
	return s.links.DeleteExpired(ctx, s.now())
}

// issueLink stores a fresh link for u and renders the email carrying it.
func (s *authService) issueLink(ctx context.Context, u *model.User, purpose model.MagicLinkPurpose, businessName string) (mail.Message, error) {
	secret, err := auth.NewSecret()
	if err != nil {
		return mail.Message{}, err
	}
	now := s.now()
	ml := &model.MagicLink{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Email:     u.Email,
		TokenHash: secret.TokenHash,
		CodeHash:  secret.CodeHash,
		Purpose:   purpose,
		ExpiresAt: now.Add(s.opts.MagicLinkTTL),
		CreatedAt: now,
	}
	if err := s.links.Create(ctx, ml); err != nil {
		return mail.Message{}, err
	}

	data := mail.MagicLinkData{
		Name:         u.Name,
		Link:         s.opts.BaseURL + "/auth/magic-link?token=" + url.QueryEscape(secret.Token),
		Code:         secret.Code,
		ExpiresIn:    s.opts.MagicLinkTTL,
		BusinessName: businessName,
	}
	if purpose == model.MagicLinkSetup {
		return mail.InviteMessage(u.Email, data)
	}
	return mail.MagicLinkMessage(u.Email, data)
}

func (s *authService) session(u *model.User) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}

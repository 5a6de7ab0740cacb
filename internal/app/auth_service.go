package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/auth"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/clock"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/mail"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/metrics"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/verification"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	MarkVerified(ctx context.Context, id string) error
}

type TokenIssuer interface {
	Issue(userID string) (auth.Token, error)
	Verify(token string) (auth.Claims, error)
}

type AuthService struct {
	users   UserRepository
	codes   verification.Store
	mailer  mail.Mailer
	tokens  TokenIssuer
	clock   clock.Clock
	logger  zerolog.Logger
	codeTTL time.Duration
}

const defaultCodeTTL = 10 * time.Minute

func NewAuthService(users UserRepository, codes verification.Store, mailer mail.Mailer, tokens TokenIssuer, clk clock.Clock, opts ...AuthServiceOption) *AuthService {
	svc := &AuthService{
		users:   users,
		codes:   codes,
		mailer:  mailer,
		tokens:  tokens,
		clock:   clk,
		logger:  zerolog.Nop(),
		codeTTL: defaultCodeTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type AuthServiceOption func(*AuthService)

// WithCodeTTL overrides how long verification codes stay valid.
func WithCodeTTL(d time.Duration) AuthServiceOption {
	return func(s *AuthService) {
		if d > 0 {
			s.codeTTL = d
		}
	}
}

func WithAuthLogger(l zerolog.Logger) AuthServiceOption {
	return func(s *AuthService) {
		s.logger = l
	}
}

// Register stores an unverified user and mails a verification code.
// Mail failures are logged; the account is kept.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.User, error) {
	email = normalizeEmail(email)

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		metrics.RecordAuth("register", false)
		return domain.User{}, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	// A user row must never exist without a pending code.
	code, err := verification.GenerateCode()
	if err != nil {
		return domain.User{}, err
	}
	if err := s.codes.Put(ctx, email, code, s.codeTTL); err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:             newUUID(),
		Email:          email,
		HashedPassword: hash,
		IsVerified:     false,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.RecordAuth("register", false)
		}
		return domain.User{}, err
	}

	if err := s.mailer.SendVerificationCode(ctx, email, code); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("send verification code")
	}

	metrics.RecordAuth("register", true)
	return u, nil
}

// Verify consumes a pending code and marks the user verified.
func (s *AuthService) Verify(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.IsVerified {
		return domain.ErrAlreadyVerified
	}

	ok, err := s.codes.Consume(ctx, email, strings.TrimSpace(code))
	if err != nil {
		return err
	}
	if !ok {
		metrics.RecordAuth("verify", false)
		return domain.ErrInvalidCode
	}
	if err := s.users.MarkVerified(ctx, u.ID); err != nil {
		return err
	}
	metrics.RecordAuth("verify", true)
	return nil
}

// Login checks credentials and issues an access token for a verified user.
func (s *AuthService) Login(ctx context.Context, email, password string) (auth.Token, error) {
	u, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.RecordAuth("login", false)
			return auth.Token{}, domain.ErrInvalidCredentials
		}
		return auth.Token{}, err
	}
	if !auth.CheckPassword(u.HashedPassword, password) {
		metrics.RecordAuth("login", false)
		return auth.Token{}, domain.ErrInvalidCredentials
	}
	if !u.IsVerified {
		metrics.RecordAuth("login", false)
		return auth.Token{}, domain.ErrEmailNotVerified
	}

	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return auth.Token{}, err
	}
	metrics.RecordAuth("login", true)
	return tok, nil
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return domain.User{}, domain.ErrUnauthorized
	}
	u, err := s.users.GetUserByID(ctx, claims.Sub)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrUnauthorized
		}
		return domain.User{}, err
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

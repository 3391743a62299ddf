package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Auther orchestrates login and request authorization against a principal
// store. It keeps no mutable state after construction and is safe for
// concurrent use.
type Auther struct {
	store        PrincipalStore
	signingKey   []byte
	logger       Logger
	tokenService TokenService
}

// NewAuthenticator returns a new Authenticator. A missing signing key is a
// deployment error the caller should have caught via LoadConfig; we do not
// fall back to a default here.
func NewAuthenticator(store PrincipalStore, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenTTL(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		store:        store,
		signingKey:   []byte(opts.GetSigningKey()),
		logger:       defLogger{},
		tokenService: tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService swaps the token codec, e.g. for a clock-injected instance
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and issues a bearer token bound to the
// username. Unknown usernames and wrong passwords are indistinguishable to
// the caller.
func (s *Auther) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	principal, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.logger.Info("Login attempt for unknown username")
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Login principal lookup error", "error", err)
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve principal during login")
	}

	if principal == nil || !VerifyPassword(password, principal.PasswordHash) {
		s.logger.Info("Login credential verification failed", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenService.Issue(principal.Username, principal.Role)
	if err != nil {
		s.logger.Error("Login token issuance error", "error", err)
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to issue token")
	}

	return token, nil
}

// Authorize validates the presented token and re-resolves its subject against
// the live principal store, so a deleted account is rejected even while its
// token is unexpired. Every failure collapses to ErrUnauthorized; the cause
// only reaches the logger.
func (s *Auther) Authorize(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.tokenService.Validate(token)
	if err != nil {
		s.logger.Info("Authorize token validation failed", "error", err)
		return nil, ErrUnauthorized
	}

	principal, err := s.store.FindByUsername(ctx, claims.Subject())
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.logger.Warn("Authorize subject no longer resolves", "subject", claims.Subject())
		} else {
			s.logger.Error("Authorize principal lookup error", "error", err)
		}
		return nil, ErrUnauthorized
	}

	if principal == nil {
		return nil, ErrUnauthorized
	}

	return principal, nil
}

// Verify interface compliance
var _ Authenticator = (*Auther)(nil)

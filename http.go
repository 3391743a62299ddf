package auth

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// ErrMissingOrMalformedToken is returned when the Authorization header is
// absent or does not carry a bearer credential
var ErrMissingOrMalformedToken = goerrors.New("missing or malformed authorization header", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("MISSING_TOKEN")

// TokenResponse is the login response body
type TokenResponse struct {
	Token     string `json:"token"`
	TokenKind string `json:"token_kind"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// GetUsername will return the username
func (r LoginRequest) GetUsername() string {
	return r.Username
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
			validation.Length(1, 100),
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// RouteAuthenticator adapts the Authenticator to the HTTP boundary: a JSON
// login handler and a middleware guarding privileged routes. Business route
// registration stays with the host.
type RouteAuthenticator struct {
	auth         Authenticator
	cfg          Config
	Logger       Logger
	ErrorHandler func(c router.Context, err error) error
}

// NewHTTPAuthenticator returns the boundary adapter
func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	if auther == nil {
		return nil, goerrors.New("authenticator is required", goerrors.CategoryBadInput)
	}

	a := &RouteAuthenticator{
		auth:   auther,
		cfg:    cfg,
		Logger: defLogger{},
	}

	a.ErrorHandler = a.defaultAuthErrHandler

	return a, nil
}

// Login binds {username, password}, runs the credential check, and returns
// {token, token_kind}. Authentication failures get the same body regardless
// of cause.
func (a *RouteAuthenticator) Login(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Info("Login payload bind error", "error", err)
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	token, err := a.auth.Login(ctx.Context(), payload.GetUsername(), payload.GetPassword())
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TokenResponse{
		Token:     token,
		TokenKind: "bearer",
	})
}

// ProtectedRoute authorizes the bearer token, stores the resolved principal
// under the configured context key, and lets the chain continue. Any failure
// produces one uniform rejection.
func (a *RouteAuthenticator) ProtectedRoute() router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			raw, err := TokenFromHeader(ctx, a.cfg.GetAuthScheme())
			if err != nil {
				return a.ErrorHandler(ctx, err)
			}

			principal, err := a.auth.Authorize(ctx.Context(), raw)
			if err != nil {
				return a.ErrorHandler(ctx, err)
			}

			ctx.Locals(a.cfg.GetContextKey(), principal)
			ctx.SetContext(WithContext(ctx.Context(), principal))

			return ctx.Next()
		}
	}
}

// TokenFromHeader extracts the bearer credential from the standard
// authorization header
func TokenFromHeader(ctx router.Context, authScheme string) (string, error) {
	header := ctx.Header(router.HeaderAuthorization)
	if header == "" {
		return "", ErrMissingOrMalformedToken
	}

	if authScheme == "" {
		return strings.TrimSpace(header), nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], authScheme) {
		return "", ErrMissingOrMalformedToken
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMissingOrMalformedToken
	}

	return token, nil
}

func (a *RouteAuthenticator) defaultAuthErrHandler(c router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryAuth, "An unexpected authentication error").
			WithCode(goerrors.CodeUnauthorized)
	}

	a.Logger.Info(
		"Authentication rejected",
		"error", richErr.Message,
		"text_code", richErr.TextCode,
		"path", c.OriginalURL(),
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
}

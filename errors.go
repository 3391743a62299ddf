package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrInvalidCredentials is returned from Login for unknown usernames and for
// wrong passwords alike, so callers cannot enumerate accounts.
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrUnauthorized is the single external shape for every authorization
// failure: missing, malformed, expired, or forged tokens, and tokens whose
// subject no longer resolves to a principal.
var ErrUnauthorized = goerrors.New("unauthorized", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("UNAUTHORIZED")

// ErrTokenExpired is codec-level detail; the authenticator collapses it to
// ErrUnauthorized before it reaches a caller.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed covers structurally broken tokens and signature failures.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrPrincipalNotFound is the error we return for non found principals
var ErrPrincipalNotFound = goerrors.New("principal not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("PRINCIPAL_NOT_FOUND")

// ErrMissingSigningSecret aborts startup; running on an implicit default
// secret is not an option.
var ErrMissingSigningSecret = goerrors.New("signing secret is not configured", goerrors.CategoryOperation).
	WithTextCode("MISSING_SIGNING_SECRET")

// ErrMismatchedHashAndPassword is the mismatch error from the credential hasher
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("PASSWORD_MISMATCH")

// ErrNoEmptyString rejects empty plaintext at hash time
var ErrNoEmptyString = goerrors.New("value should not be an empty string", goerrors.CategoryBadInput)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed")
}

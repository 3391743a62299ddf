// Package auth is the identity and credential boundary for the leadfoundry
// site backend: bcrypt credential hashing, HS256 bearer token issuance and
// validation, login/authorize orchestration, and the startup bootstrap that
// guarantees an administrative principal exists.
//
// Principals:
//   - Principal is the typed identity record (unique username, credential
//     hash, role). The store behind it is reached only through the narrow
//     PrincipalStore interface; a Bun-backed repository ships in this package
//     for hosts that do not bring their own.
//
// Error discipline:
//   - Login and Authorize are deliberately under-specific to callers: unknown
//     usernames, wrong passwords, expired or forged tokens, and vanished
//     subjects all surface as ErrInvalidCredentials or ErrUnauthorized with no
//     hint of which check failed. The detailed cause goes to the Logger only.
//
// Tokens are stateless and cannot be revoked before expiry; removing the
// principal is the only early cut-off, and Authorize re-resolves the subject
// on every call so that removal takes effect immediately.
package auth

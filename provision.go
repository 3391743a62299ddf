package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Provisioner guarantees a known administrative principal exists at process
// start. It is keyed by username and safe to run on every boot: an existing
// account, password changes included, is never touched.
type Provisioner struct {
	store  PrincipalStore
	logger Logger
}

// NewProvisioner will create a new Provisioner
func NewProvisioner(store PrincipalStore) *Provisioner {
	return &Provisioner{
		store:  store,
		logger: defLogger{},
	}
}

func (p *Provisioner) WithLogger(logger Logger) *Provisioner {
	p.logger = logger
	return p
}

// EnsureAdmin creates the administrative principal if and only if no
// principal with that username exists. The store's CreateIfAbsent primitive
// carries the atomicity; two racing startups still produce one record.
func (p *Provisioner) EnsureAdmin(ctx context.Context, username, password string) (*Principal, error) {
	if username == "" {
		return nil, goerrors.New("admin username must not be empty", goerrors.CategoryBadInput)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash default admin credential")
	}

	record := &Principal{
		Username:     username,
		PasswordHash: hash,
		Role:         RoleAdmin,
	}

	if err := record.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid admin principal")
	}

	created, err := p.store.CreateIfAbsent(ctx, record)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to provision admin principal")
	}

	if created {
		p.logger.Info("Provisioned administrative principal", "username", username)
	} else {
		p.logger.Debug("Administrative principal already present, leaving credentials untouched", "username", username)
	}

	return p.store.FindByUsername(ctx, username)
}

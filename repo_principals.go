package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var resetPrincipalPasswordSQL = `UPDATE "principals" AS "prn"
SET
	"password_hash" = ?,
	"updated_at" = current_timestamp
WHERE (
	"prn"."id" = ?
) RETURNING *;`

// Principals exposes the principal repository
type Principals interface {
	repository.Repository[*Principal]

	FindByUsername(ctx context.Context, username string) (*Principal, error)
	CreateIfAbsent(ctx context.Context, record *Principal) (bool, error)
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	ResetPasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error
	DeleteByUsername(ctx context.Context, username string) error
}

type principals struct {
	repository.Repository[*Principal]
	db *bun.DB
}

var (
	_ Principals     = (*principals)(nil)
	_ PrincipalStore = (*principals)(nil)
)

// NewPrincipalsRepository wires the Bun-backed principal store
func NewPrincipalsRepository(db *bun.DB) Principals {
	repo := repository.NewRepository[*Principal](db, repository.ModelHandlers[*Principal]{
		NewRecord: func() *Principal { return &Principal{} },
		GetID: func(p *Principal) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Principal, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &principals{
		Repository: repo,
		db:         db,
	}
}

// FindByUsername is the point lookup the core relies on. Records are
// validated on the way out so nothing downstream trusts raw rows.
func (a *principals) FindByUsername(ctx context.Context, username string) (*Principal, error) {
	record := &Principal{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}

	if err := record.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "stored principal failed validation").
			WithMetadata(map[string]any{"username": username})
	}

	return record, nil
}

// CreateIfAbsent inserts the record unless a principal with the same username
// already exists. The conflict clause makes check-and-create a single atomic
// statement, which is what keeps concurrent bootstraps from racing.
func (a *principals) CreateIfAbsent(ctx context.Context, record *Principal) (bool, error) {
	if record == nil {
		return false, goerrors.New("record must not be nil", goerrors.CategoryBadInput)
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if err := record.Validate(); err != nil {
		return false, err
	}

	res, err := a.db.NewInsert().
		Model(record).
		On("CONFLICT (username) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// ResetPassword swaps the credential hash for an existing principal. This is
// the only mutation the core performs on principals after creation.
func (a *principals) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return a.ResetPasswordTx(ctx, a.db, id, passwordHash)
}

func (a *principals) ResetPasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error {
	res, err := a.Repository.RawTx(ctx, tx, resetPrincipalPasswordSQL, passwordHash, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return ErrPrincipalNotFound
	}

	return nil
}

// DeleteByUsername removes a principal. The core never calls this; it exists
// for host admin tooling and makes token-outlives-account behavior testable.
func (a *principals) DeleteByUsername(ctx context.Context, username string) error {
	res, err := a.db.NewDelete().
		Model((*Principal)(nil)).
		Where("?TableAlias.username = ?", username).
		Exec(ctx)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrPrincipalNotFound
	}

	return nil
}

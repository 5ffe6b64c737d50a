package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
)

type PgxContactRepository struct {
	BaseRepository
}

// newPgxContactRepository creates a read-only repository over the contact registry.
func newPgxContactRepository(pool *pgxpool.Pool) portsrepo.ContactReader {
	return &PgxContactRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ContactReader = (*PgxContactRepository)(nil)

// ContactExists reports whether a contact with the given ID and type exists.
func (r *PgxContactRepository) ContactExists(ctx context.Context, contactID string, contactType domain.ContactType) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM contacts WHERE contact_id = $1 AND contact_type = $2);`
	if err := r.Pool.QueryRow(ctx, query, contactID, contactType).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check contact %s: %w", contactID, err)
	}
	return exists, nil
}

package repositories

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// ContactReader verifies counterparties against the externally owned contact
// registry. Only existence and role checks are needed here.
type ContactReader interface {
	// ContactExists reports whether a contact with the given ID and type exists.
	ContactExists(ctx context.Context, contactID string, contactType domain.ContactType) (bool, error)
}

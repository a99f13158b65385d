package partner

import (
	"context"

	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByTaxID finds a client by its CPF/CNPJ
	FindByTaxID(ctx context.Context, taxID string) (*Client, error)

	// FindAll returns all clients, newest registration first
	FindAll(ctx context.Context) ([]Client, error)

	// Count returns the total number of registered clients
	Count(ctx context.Context) (int64, error)

	// Save creates or updates a client. A tax-ID collision with another
	// client surfaces as shared.ErrTaxIDConflict.
	Save(ctx context.Context, client *Client) error
}

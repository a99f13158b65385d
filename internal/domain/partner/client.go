package partner

import (
	"strings"

	"github.com/despachante/backend/internal/domain/shared"
)

// Client represents a brokerage client. It is the aggregate root for
// client-related operations; service orders reference it by ID.
type Client struct {
	shared.BaseEntity
	Name    string
	TaxID   string // CPF or CNPJ, unique across clients
	Phone   string
	Email   string
	Address string
	Notes   string
}

// NewClient creates a new client with required fields
func NewClient(name, taxID string) (*Client, error) {
	name = strings.TrimSpace(name)
	taxID = strings.TrimSpace(taxID)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	if taxID == "" {
		return nil, shared.NewDomainError("INVALID_TAX_ID", "CPF/CNPJ is required")
	}
	if len(taxID) > 20 {
		return nil, shared.NewDomainError("INVALID_TAX_ID", "CPF/CNPJ cannot exceed 20 characters")
	}

	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		TaxID:      taxID,
	}, nil
}

// Update updates the client's registration data. The tax ID is part of
// the update because registration typos get corrected in place.
func (c *Client) Update(name, taxID string) error {
	name = strings.TrimSpace(name)
	taxID = strings.TrimSpace(taxID)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name is required")
	}
	if taxID == "" {
		return shared.NewDomainError("INVALID_TAX_ID", "CPF/CNPJ is required")
	}

	c.Name = name
	c.TaxID = taxID
	c.Touch()
	return nil
}

// SetContact sets the client's contact information
func (c *Client) SetContact(phone, email, address string) {
	c.Phone = strings.TrimSpace(phone)
	c.Email = strings.TrimSpace(email)
	c.Address = strings.TrimSpace(address)
	c.Touch()
}

// SetNotes replaces the free-text notes
func (c *Client) SetNotes(notes string) {
	c.Notes = notes
	c.Touch()
}

package partner

import (
	"context"
	"time"

	"github.com/despachante/backend/internal/domain/identity"
	"github.com/despachante/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// ClientService provides application-level client operations
type ClientService struct {
	clients partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clients partner.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateClientRequest represents a request to register a client
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	TaxID   string `json:"tax_id" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateClientRequest represents a request to edit a client
type UpdateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	TaxID   string `json:"tax_id" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// CreateClient registers a new client
func (s *ClientService) CreateClient(ctx context.Context, _ identity.Actor, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(req.Name, req.TaxID)
	if err != nil {
		return nil, err
	}
	client.SetContact(req.Phone, req.Email, req.Address)
	client.SetNotes(req.Notes)

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// UpdateClient edits an existing client's registration data
func (s *ClientService) UpdateClient(ctx context.Context, _ identity.Actor, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := client.Update(req.Name, req.TaxID); err != nil {
		return nil, err
	}
	client.SetContact(req.Phone, req.Email, req.Address)
	client.SetNotes(req.Notes)

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetClient fetches a single client
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// ListClients lists all clients, newest registration first
func (s *ClientService) ListClients(ctx context.Context) ([]ClientResponse, error) {
	clients, err := s.clients.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, *toClientResponse(&clients[i]))
	}
	return out, nil
}

func toClientResponse(c *partner.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

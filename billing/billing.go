// Package billing covers invoices and payments. Read-only from the portal
// side; invoicing is done by the finance team.
package billing

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/ludmilpaulo/rayleneimmigration.co.za/session"
)

// Invoice statuses
const (
	StatusDraft     = "DRAFT"
	StatusSent      = "SENT"
	StatusPaid      = "PAID"
	StatusOverdue   = "OVERDUE"
	StatusCancelled = "CANCELLED"
)

// Doer dispatches an authenticated JSON request; satisfied by *session.Client
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// LineItem is one row on an invoice
type LineItem struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// Invoice as served by the API. Monetary amounts arrive as decimal strings
// and are passed through untouched.
type Invoice struct {
	ID          string     `json:"id"`
	Client      string     `json:"client"`
	Application string     `json:"application,omitempty"`
	Number      string     `json:"number"`
	Items       []LineItem `json:"items,omitempty"`
	Subtotal    string     `json:"subtotal"`
	Tax         string     `json:"tax"`
	Total       string     `json:"total"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	DueDate     string     `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Payment records money received against an invoice
type Payment struct {
	ID         string     `json:"id"`
	Invoice    string     `json:"invoice"`
	Provider   string     `json:"provider"`
	Amount     string     `json:"amount"`
	Currency   string     `json:"currency"`
	ExternalID string     `json:"external_id,omitempty"`
	Status     string     `json:"status"`
	ReceiptURL string     `json:"receipt_url,omitempty"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// InvoiceFilters narrow an invoice listing
type InvoiceFilters struct {
	session.ListParams
	Status string
}

// Service calls the billing endpoints through the session client
type Service struct {
	client Doer
}

func New(client Doer) *Service {
	return &Service{client: client}
}

// Invoices returns a page of the caller's invoices
func (s *Service) Invoices(ctx context.Context, filters InvoiceFilters) (*session.Page[Invoice], error) {
	values := filters.Values()
	if filters.Status != "" {
		values.Set("status", filters.Status)
	}

	var page session.Page[Invoice]
	if err := s.client.Do(ctx, "GET", "/billing/invoices/"+session.EncodeQuery(values), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Invoice fetches a single invoice
func (s *Service) Invoice(ctx context.Context, id string) (*Invoice, error) {
	var invoice Invoice
	if err := s.client.Do(ctx, "GET", fmt.Sprintf("/billing/invoices/%s/", url.PathEscape(id)), nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Payments returns a page of payments visible to the caller
func (s *Service) Payments(ctx context.Context, params session.ListParams) (*session.Page[Payment], error) {
	var page session.Page[Payment]
	if err := s.client.Do(ctx, "GET", "/billing/payments/"+params.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

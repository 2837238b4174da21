// Package communications covers in-application messages and outbound
// notifications.
package communications

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ludmilpaulo/rayleneimmigration.co.za/session"
)

// Notification channels
const (
	ChannelEmail    = "EMAIL"
	ChannelSMS      = "SMS"
	ChannelWhatsapp = "WHATSAPP"
	ChannelInApp    = "IN_APP"
)

// Doer dispatches an authenticated JSON request; satisfied by *session.Client
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Message is one entry in an application's message thread
type Message struct {
	ID          string    `json:"id"`
	Application string    `json:"application"`
	FromUser    string    `json:"from_user"`
	ToUser      string    `json:"to_user,omitempty"`
	Body        string    `json:"body"`
	Attachments []string  `json:"attachments,omitempty"`
	IsInternal  bool      `json:"is_internal"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notification is a queued or delivered outbound notification
type Notification struct {
	ID           string          `json:"id"`
	User         string          `json:"user"`
	Channel      string          `json:"channel"`
	TemplateCode string          `json:"template_code"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	Status       string          `json:"status"`
	SentAt       *time.Time      `json:"sent_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// MessageFilters narrow a message listing to one application thread
type MessageFilters struct {
	session.ListParams
	Application string
}

// SendRequest posts a message into an application thread
type SendRequest struct {
	Application string `json:"application"`
	ToUser      string `json:"to_user,omitempty"`
	Body        string `json:"body"`
	IsInternal  bool   `json:"is_internal,omitempty"`
}

// Service calls the communications endpoints through the session client
type Service struct {
	client Doer
}

func New(client Doer) *Service {
	return &Service{client: client}
}

// Messages returns a page of messages visible to the caller
func (s *Service) Messages(ctx context.Context, filters MessageFilters) (*session.Page[Message], error) {
	values := filters.Values()
	if filters.Application != "" {
		values.Set("application", filters.Application)
	}

	var page session.Page[Message]
	if err := s.client.Do(ctx, "GET", "/communications/messages/"+session.EncodeQuery(values), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Send posts a message into an application thread
func (s *Service) Send(ctx context.Context, req SendRequest) (*Message, error) {
	var msg Message
	if err := s.client.Do(ctx, "POST", "/communications/messages/", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Notifications returns a page of the caller's notifications
func (s *Service) Notifications(ctx context.Context, params session.ListParams) (*session.Page[Notification], error) {
	var page session.Page[Notification]
	if err := s.client.Do(ctx, "GET", "/communications/notifications/"+params.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

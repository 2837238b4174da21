// Package bookings covers consultation scheduling: availability slots
// published by staff and the bookings clients make against them.
package bookings

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/ludmilpaulo/rayleneimmigration.co.za/session"
)

// Booking statuses
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// Meeting locations
const (
	LocationOnline   = "ONLINE"
	LocationInPerson = "IN_PERSON"
)

// Doer dispatches an authenticated JSON request; satisfied by *session.Client
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// AvailabilitySlot is a bookable consultation window
type AvailabilitySlot struct {
	ID       string    `json:"id"`
	Staff    string    `json:"staff"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location string    `json:"location"`
	Capacity int       `json:"capacity"`
}

// Booking is a client's reservation against a slot
type Booking struct {
	ID         string    `json:"id"`
	Client     string    `json:"client"`
	Staff      string    `json:"staff"`
	Slot       string    `json:"slot"`
	MeetingURL string    `json:"meeting_url,omitempty"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateRequest reserves a slot
type CreateRequest struct {
	Slot  string `json:"slot"`
	Notes string `json:"notes,omitempty"`
}

// AvailabilityFilters bound the slot search window
type AvailabilityFilters struct {
	From     time.Time
	To       time.Time
	Location string
}

// Service calls the booking endpoints through the session client
type Service struct {
	client Doer
}

func New(client Doer) *Service {
	return &Service{client: client}
}

// List returns the caller's bookings (all bookings for staff)
func (s *Service) List(ctx context.Context, params session.ListParams) (*session.Page[Booking], error) {
	var page session.Page[Booking]
	if err := s.client.Do(ctx, "GET", "/bookings/"+params.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single booking
func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	var booking Booking
	if err := s.client.Do(ctx, "GET", fmt.Sprintf("/bookings/%s/", url.PathEscape(id)), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Create reserves a consultation slot for the calling client
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	var booking Booking
	if err := s.client.Do(ctx, "POST", "/bookings/", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Availability lists open slots, optionally bounded to a window and location
func (s *Service) Availability(ctx context.Context, filters AvailabilityFilters) ([]AvailabilitySlot, error) {
	values := url.Values{}
	if !filters.From.IsZero() {
		values.Set("from", filters.From.Format(time.RFC3339))
	}
	if !filters.To.IsZero() {
		values.Set("to", filters.To.Format(time.RFC3339))
	}
	if filters.Location != "" {
		values.Set("location", filters.Location)
	}

	var slots []AvailabilitySlot
	if err := s.client.Do(ctx, "GET", "/bookings/availability/"+session.EncodeQuery(values), nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

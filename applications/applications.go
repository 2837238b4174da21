// Package applications covers the visa/immigration application endpoints:
// the core of the client portal and the staff dashboard.
package applications

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/ludmilpaulo/rayleneimmigration.co.za/session"
)

// Status values an application moves through
const (
	StatusDraft        = "DRAFT"
	StatusSubmitted    = "SUBMITTED"
	StatusInReview     = "IN_REVIEW"
	StatusAwaitingDocs = "AWAITING_DOCS"
	StatusLodged       = "LODGED"
	StatusApproved     = "APPROVED"
	StatusRejected     = "REJECTED"
	StatusClosed       = "CLOSED"
)

// Priority values
const (
	PriorityLow    = "LOW"
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Doer dispatches an authenticated JSON request; satisfied by *session.Client
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// ApplicationType is an offered service (visa category, permit type)
type ApplicationType struct {
	ID              string   `json:"id"`
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Country         string   `json:"country"`
	Description     string   `json:"description,omitempty"`
	BasePrice       string   `json:"base_price,omitempty"`
	DocRequirements []string `json:"doc_requirements,omitempty"`
	IsActive        bool     `json:"is_active"`
}

// StatusHistory is one entry in an application's audit trail
type StatusHistory struct {
	ID             string    `json:"id"`
	FromStatus     string    `json:"from_status,omitempty"`
	ToStatus       string    `json:"to_status"`
	Note           string    `json:"note,omitempty"`
	ChangedByEmail string    `json:"changed_by_email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Task is a staff work item attached to an application
type Task struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	AssignedToEmail string     `json:"assigned_to_email,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Application is a client's immigration application as served by the API.
// StatusHistory and Tasks are only populated on detail fetches.
type Application struct {
	ID                  string          `json:"id"`
	ClientEmail         string          `json:"client_email,omitempty"`
	ApplicationType     string          `json:"application_type"`
	ApplicationTypeName string          `json:"application_type_name,omitempty"`
	AssignedTo          string          `json:"assigned_to,omitempty"`
	AssignedToEmail     string          `json:"assigned_to_email,omitempty"`
	Status              string          `json:"status"`
	Priority            string          `json:"priority"`
	Country             string          `json:"country"`
	Notes               string          `json:"notes,omitempty"`
	InternalNotes       string          `json:"internal_notes,omitempty"`
	DHARef              string          `json:"dha_ref,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	SubmittedAt         *time.Time      `json:"submitted_at,omitempty"`
	StatusHistory       []StatusHistory `json:"status_history,omitempty"`
	Tasks               []Task          `json:"tasks,omitempty"`
}

// CreateRequest opens a new draft application
type CreateRequest struct {
	ApplicationType string `json:"application_type"`
	Country         string `json:"country"`
	Notes           string `json:"notes,omitempty"`
}

// UpdateRequest patches mutable application fields; zero values are omitted
type UpdateRequest struct {
	AssignedTo    string `json:"assigned_to,omitempty"`
	Priority      string `json:"priority,omitempty"`
	Notes         string `json:"notes,omitempty"`
	InternalNotes string `json:"internal_notes,omitempty"`
	DHARef        string `json:"dha_ref,omitempty"`
}

// StatusUpdateRequest moves an application to a new status with an optional
// audit note
type StatusUpdateRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// ListFilters narrow a listing beyond the shared pagination params
type ListFilters struct {
	session.ListParams
	Status          string
	ApplicationType string
}

// Service calls the application endpoints through the session client
type Service struct {
	client Doer
}

func New(client Doer) *Service {
	return &Service{client: client}
}

// List returns a page of applications visible to the caller (clients see
// their own, staff see all).
func (s *Service) List(ctx context.Context, filters ListFilters) (*session.Page[Application], error) {
	values := filters.Values()
	if filters.Status != "" {
		values.Set("status", filters.Status)
	}
	if filters.ApplicationType != "" {
		values.Set("application_type", filters.ApplicationType)
	}

	var page session.Page[Application]
	if err := s.client.Do(ctx, "GET", "/applications/"+session.EncodeQuery(values), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches one application with its status history and tasks
func (s *Service) Get(ctx context.Context, id string) (*Application, error) {
	var app Application
	if err := s.client.Do(ctx, "GET", fmt.Sprintf("/applications/%s/", url.PathEscape(id)), nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Create opens a new draft application for the calling client
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Application, error) {
	var app Application
	if err := s.client.Do(ctx, "POST", "/applications/", req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Update patches an application's mutable fields
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Application, error) {
	var app Application
	if err := s.client.Do(ctx, "PATCH", fmt.Sprintf("/applications/%s/", url.PathEscape(id)), req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatus transitions an application and records the change in its
// status history. Staff only.
func (s *Service) UpdateStatus(ctx context.Context, id string, req StatusUpdateRequest) (*Application, error) {
	var app Application
	if err := s.client.Do(ctx, "PATCH", fmt.Sprintf("/applications/%s/update_status/", url.PathEscape(id)), req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Types lists the application types on offer
func (s *Service) Types(ctx context.Context) ([]ApplicationType, error) {
	var types []ApplicationType
	if err := s.client.Do(ctx, "GET", "/applications/types/", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

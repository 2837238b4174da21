// Package documents covers supporting-document records and the presigned
// upload flow. The actual file transfer to object storage happens outside
// this client; only the presign request goes through the API.
package documents

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/ludmilpaulo/rayleneimmigration.co.za/session"
)

// Review outcomes
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Doer dispatches an authenticated JSON request; satisfied by *session.Client
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// DocumentType describes a category of required document
type DocumentType struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MimeTypes   []string `json:"mime_types,omitempty"`
}

// Document is an uploaded supporting document record
type Document struct {
	ID               string     `json:"id"`
	Application      string     `json:"application"`
	DocumentType     string     `json:"document_type"`
	DocumentTypeName string     `json:"document_type_name,omitempty"`
	URL              string     `json:"url"`
	Filename         string     `json:"filename"`
	Size             int64      `json:"size"`
	MimeType         string     `json:"mime_type"`
	Status           string     `json:"status"`
	ReviewNote       string     `json:"review_note,omitempty"`
	UploadedByEmail  string     `json:"uploaded_by_email,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreateRequest registers an already-uploaded file against an application
type CreateRequest struct {
	Application  string `json:"application"`
	DocumentType string `json:"document_type"`
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
}

// ReviewRequest records a staff review decision
type ReviewRequest struct {
	Status     string `json:"status"`
	ReviewNote string `json:"review_note,omitempty"`
}

type presignRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// Presigned is a short-lived direct-upload grant for object storage
type Presigned struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"`
}

// ListFilters narrow a document listing
type ListFilters struct {
	session.ListParams
	Status       string
	DocumentType string
	Application  string
}

// Service calls the document endpoints through the session client
type Service struct {
	client Doer
}

func New(client Doer) *Service {
	return &Service{client: client}
}

// List returns a page of document records visible to the caller
func (s *Service) List(ctx context.Context, filters ListFilters) (*session.Page[Document], error) {
	values := filters.Values()
	if filters.Status != "" {
		values.Set("status", filters.Status)
	}
	if filters.DocumentType != "" {
		values.Set("document_type", filters.DocumentType)
	}
	if filters.Application != "" {
		values.Set("application", filters.Application)
	}

	var page session.Page[Document]
	if err := s.client.Do(ctx, "GET", "/documents/"+session.EncodeQuery(values), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single document record
func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	var doc Document
	if err := s.client.Do(ctx, "GET", fmt.Sprintf("/documents/%s/", url.PathEscape(id)), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create registers an uploaded file against an application
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Document, error) {
	var doc Document
	if err := s.client.Do(ctx, "POST", "/documents/", req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Presign asks the API for a direct-upload URL for filename. The upload
// itself is the caller's business.
func (s *Service) Presign(ctx context.Context, filename, contentType string) (*Presigned, error) {
	var grant Presigned
	req := presignRequest{Filename: filename, ContentType: contentType}
	if err := s.client.Do(ctx, "POST", "/documents/uploads/presign/", req, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

// Review records a staff decision on a document
func (s *Service) Review(ctx context.Context, id string, req ReviewRequest) (*Document, error) {
	var doc Document
	if err := s.client.Do(ctx, "PATCH", fmt.Sprintf("/documents/%s/review/", url.PathEscape(id)), req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Types lists the document categories the consultancy accepts
func (s *Service) Types(ctx context.Context) ([]DocumentType, error) {
	var types []DocumentType
	if err := s.client.Do(ctx, "GET", "/documents/types/", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

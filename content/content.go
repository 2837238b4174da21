// Package content covers the public blog endpoints. These work with or
// without a session; going through the session client simply attaches the
// bearer token when one exists.
package content

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/ludmilpaulo/rayleneimmigration.co.za/session"
)

// Doer dispatches an authenticated JSON request; satisfied by *session.Client
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// BlogPost as served by the API. List responses omit BodyHTML.
type BlogPost struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	BodyHTML    string     `json:"body_html,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at,omitempty"`
}

// Service calls the content endpoints through the session client
type Service struct {
	client Doer
}

func New(client Doer) *Service {
	return &Service{client: client}
}

// Blog returns a page of published posts
func (s *Service) Blog(ctx context.Context, params session.ListParams) (*session.Page[BlogPost], error) {
	var page session.Page[BlogPost]
	if err := s.client.Do(ctx, "GET", "/content/blog/"+params.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// BlogPost fetches a single post by slug, body included
func (s *Service) BlogPost(ctx context.Context, slug string) (*BlogPost, error) {
	var post BlogPost
	if err := s.client.Do(ctx, "GET", fmt.Sprintf("/content/blog/%s/", url.PathEscape(slug)), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

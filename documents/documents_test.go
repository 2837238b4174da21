package documents_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ludmilpaulo/rayleneimmigration.co.za/documents"
)

type fakeDoer struct {
	method   string
	path     string
	body     any
	response string
}

func (f *fakeDoer) Do(_ context.Context, method, path string, body, out any) error {
	f.method = method
	f.path = path
	f.body = body
	if out == nil || f.response == "" {
		return nil
	}
	return json.Unmarshal([]byte(f.response), out)
}

func TestService_Presign(t *testing.T) {
	doer := &fakeDoer{response: `{
		"url": "https://storage.example.com/documents/user-1/passport.pdf?signature=abc",
		"key": "documents/user-1/passport.pdf",
		"expires_in": 3600
	}`}
	svc := documents.New(doer)

	grant, err := svc.Presign(context.Background(), "passport.pdf", "application/pdf")
	require.NoError(t, err)
	require.Equal(t, "POST", doer.method)
	require.Equal(t, "/documents/uploads/presign/", doer.path)
	require.Equal(t, "documents/user-1/passport.pdf", grant.Key)
	require.Equal(t, 3600, grant.ExpiresIn)

	sent, err := json.Marshal(doer.body)
	require.NoError(t, err)
	require.JSONEq(t, `{"filename": "passport.pdf", "content_type": "application/pdf"}`, string(sent))
}

func TestService_List(t *testing.T) {
	doer := &fakeDoer{response: `{"count": 0, "next": null, "previous": null, "results": []}`}
	svc := documents.New(doer)

	_, err := svc.List(context.Background(), documents.ListFilters{
		Status:      documents.StatusPending,
		Application: "app-1",
	})
	require.NoError(t, err)
	require.Equal(t, "/documents/?application=app-1&status=PENDING", doer.path)
}

func TestService_Review(t *testing.T) {
	doer := &fakeDoer{response: `{"id": "doc-1", "status": "REJECTED", "review_note": "Scan is illegible"}`}
	svc := documents.New(doer)

	doc, err := svc.Review(context.Background(), "doc-1", documents.ReviewRequest{
		Status:     documents.StatusRejected,
		ReviewNote: "Scan is illegible",
	})
	require.NoError(t, err)
	require.Equal(t, "PATCH", doer.method)
	require.Equal(t, "/documents/doc-1/review/", doer.path)
	require.Equal(t, documents.StatusRejected, doc.Status)
}

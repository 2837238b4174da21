package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ludmilpaulo/rayleneimmigration.co.za/session"
)

func TestListParams_Encode(t *testing.T) {
	t.Run("empty params produce no query string", func(t *testing.T) {
		require.Equal(t, "", session.ListParams{}.Encode())
	})

	t.Run("set params are encoded", func(t *testing.T) {
		params := session.ListParams{Page: 2, PageSize: 50, Ordering: "-created_at"}
		require.Equal(t, "?ordering=-created_at&page=2&page_size=50", params.Encode())
	})
}

func TestPage_HasNext(t *testing.T) {
	next := "http://localhost:8000/api/applications/?page=2"
	empty := ""

	require.True(t, (&session.Page[int]{Next: &next}).HasNext())
	require.False(t, (&session.Page[int]{Next: &empty}).HasNext())
	require.False(t, (&session.Page[int]{}).HasNext())

	var nilPage *session.Page[int]
	require.False(t, nilPage.HasNext())
}

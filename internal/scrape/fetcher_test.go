package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protokolbase/protokolbase/internal/apperr"
)

func TestSessionFetcher_FetchSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sitzungen/5342411", r.URL.Path)
		w.Write([]byte(sessionPageHTML))
	}))
	defer srv.Close()

	f := NewSessionFetcher(srv.URL)

	session, err := f.FetchSession(context.Background(), "5342411")
	require.NoError(t, err)

	assert.Equal(t, "Gemeinderatssitzung vom 17. April 2023", session.Title)
	require.Len(t, session.Documents, 2)
	assert.Equal(t, srv.URL+"/_doc/123", session.Documents[0].SourceURL)
}

func TestSessionFetcher_FetchSession_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewSessionFetcher(srv.URL)

	_, err := f.FetchSession(context.Background(), "missing")
	require.Error(t, err)

	var fe *apperr.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	assert.Equal(t, srv.URL+"/sitzungen/missing", fe.URL)
}

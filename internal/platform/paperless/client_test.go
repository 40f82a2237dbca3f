package paperless

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	"github.com/poolcost/pool-cost-tracker/internal/platform/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.Config{
		PaperlessBaseURL: serverURL,
		PaperlessToken:   "test-token",
		PaperlessTimeout: 5 * time.Second,
		ProjectTagName:   "pool",
		SyncPageSize:     2,
		SyncLookbackDays: 365,
	})
}

func TestResolveTag_FoundAcrossPages(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprintf(w, `{"count":3,"next":"%s/api/tags/?page=2","results":[{"id":1,"name":"inbox"},{"id":2,"name":"tax"}]}`, r.Host)
		case "2":
			fmt.Fprint(w, `{"count":3,"next":null,"results":[{"id":7,"name":"Pool"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	id, err := newTestClient(server.URL).ResolveTag(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "Token test-token", gotAuth)
}

func TestResolveTag_Missing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count":1,"next":null,"results":[{"id":1,"name":"inbox"}]}`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ResolveTag(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestResolveTag_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ResolveTag(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}

func TestResolveTag_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).ResolveTag(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}

func TestListProjectDocuments_PaginatesAndNormalizes(t *testing.T) {
	recent := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/correspondents/":
			fmt.Fprint(w, `{"count":1,"next":null,"results":[{"id":3,"name":"Acme GmbH"}]}`)
		case "/api/document_types/":
			fmt.Fprint(w, `{"count":1,"next":null,"results":[{"id":5,"name":"Invoice"}]}`)
		case "/api/documents/":
			require.Equal(t, "9", r.URL.Query().Get("tags__id__all"))
			require.Equal(t, "-created", r.URL.Query().Get("ordering"))
			switch r.URL.Query().Get("page") {
			case "1":
				fmt.Fprintf(w, `{"count":3,"next":"%s/api/documents/?page=2","results":[
					{"id":101,"title":" Pump invoice ","created":"%s","correspondent":3,"document_type":5,"content":"RECHNUNG"},
					{"id":102,"title":"Chlorine","created":"%s","correspondent":{"name":"Pool Shop"},"document_type":null,"content":"total 12,00"}
				]}`, r.Host, recent, recent)
			case "2":
				fmt.Fprintf(w, `{"count":3,"next":null,"results":[
					{"id":103,"title":"Tiles","created":"%s","correspondent":"Fliesen AG","document_type":null,"content":""}
				]}`, recent)
			default:
				http.NotFound(w, r)
			}
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	docs, err := newTestClient(server.URL).ListProjectDocuments(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, int64(101), docs[0].ID)
	assert.Equal(t, "Pump invoice", docs[0].Title)
	assert.Equal(t, "Acme GmbH", docs[0].Correspondent)
	assert.Equal(t, "Invoice", docs[0].DocumentType)
	assert.Equal(t, "RECHNUNG", docs[0].Text)
	require.NotNil(t, docs[0].Created)

	assert.Equal(t, "Pool Shop", docs[1].Correspondent)
	assert.Empty(t, docs[1].DocumentType)
	assert.Equal(t, "Fliesen AG", docs[2].Correspondent)
}

func TestListProjectDocuments_StopsAtLookbackCutoff(t *testing.T) {
	recent := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	ancient := time.Now().UTC().AddDate(-3, 0, 0).Format(time.RFC3339)
	var pagesServed int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/correspondents/", "/api/document_types/":
			fmt.Fprint(w, `{"count":0,"next":null,"results":[]}`)
		case "/api/documents/":
			pagesServed++
			fmt.Fprintf(w, `{"count":4,"next":"%s/api/documents/?page=2","results":[
				{"id":201,"title":"Recent","created":"%s","correspondent":null,"document_type":null,"content":"x"},
				{"id":202,"title":"Old","created":"%s","correspondent":null,"document_type":null,"content":"y"}
			]}`, r.Host, recent, ancient)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	docs, err := newTestClient(server.URL).ListProjectDocuments(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, int64(201), docs[0].ID)
	assert.Equal(t, 1, pagesServed)
}

func TestProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count":0,"next":null,"results":[]}`)
	}))
	defer server.Close()

	rtt, err := newTestClient(server.URL).Probe(context.Background())
	require.NoError(t, err)
	assert.Greater(t, rtt, time.Duration(0))
}

func TestProbe_Down(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Probe(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}

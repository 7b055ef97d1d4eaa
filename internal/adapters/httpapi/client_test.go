package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/plumbops/internal/ports/secondary"
	"github.com/example/plumbops/internal/session"
)

// memStore keeps the session in memory for tests.
type memStore struct {
	saved session.Session
}

func (s *memStore) Load() (session.Session, error) { return s.saved, nil }
func (s *memStore) Save(sess session.Session) error {
	s.saved = sess
	return nil
}
func (s *memStore) Clear() error {
	s.saved = session.Session{}
	return nil
}

func newTestSession(t *testing.T, token string) *session.Manager {
	t.Helper()
	mgr, err := session.NewManager(&memStore{saved: session.Session{Token: token}})
	require.NoError(t, err)
	return mgr
}

func TestBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	r := chi.NewRouter()
	r.Get("/WorkOrders", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		gotReqID = req.Header.Get("X-Request-Id")
		json.NewEncoder(w).Encode([]any{})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, newTestSession(t, "tok-123"))
	_, err := NewWorkOrderGateway(client).List(t.Context())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/WorkOrders", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	sessions := newTestSession(t, "expired")
	client := NewClient(srv.URL, sessions)

	_, err := NewWorkOrderGateway(client).List(t.Context())
	assert.ErrorIs(t, err, secondary.ErrUnauthorized)
	assert.False(t, sessions.Authenticated(), "session should be cleared after a 401")
}

func TestValidationErrorCarriesServerMessage(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/WorkOrders", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"title": "customerId must be a valid uuid"})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, newTestSession(t, "tok"))
	_, err := NewWorkOrderGateway(client).Create(t.Context(), &secondary.WorkOrderCreateRecord{
		CustomerID: "nope", Title: "x",
	})

	var verr *secondary.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "customerId must be a valid uuid", verr.Message)
}

func TestServerErrorIsTransient(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/Documents", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, newTestSession(t, "tok"))
	_, err := NewDocumentGateway(client).List(t.Context())

	var terr *secondary.TransientError
	assert.ErrorAs(t, err, &terr)
}

func TestDecodeCollectionAcceptsBothShapes(t *testing.T) {
	bare := json.RawMessage(`[{"id":"a"},{"id":"b"}]`)
	envelope := json.RawMessage(`{"items":[{"id":"a"}],"total":1,"page":1,"pageSize":10}`)

	var fromBare, fromEnvelope []struct {
		ID string `json:"id"`
	}
	require.NoError(t, decodeCollection(bare, &fromBare))
	require.NoError(t, decodeCollection(envelope, &fromEnvelope))

	assert.Len(t, fromBare, 2)
	assert.Len(t, fromEnvelope, 1)

	var fromNull []struct{}
	require.NoError(t, decodeCollection(json.RawMessage(`null`), &fromNull))
	assert.Empty(t, fromNull)
}

func TestPerformActionRoutesAndBodies(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	r := chi.NewRouter()
	r.Post("/WorkOrders/{id}/*", func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		json.NewDecoder(req.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(workOrderDTO{ID: chi.URLParam(req, "id"), Status: "Paused", CustomerID: "c1"})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	gw := NewWorkOrderGateway(NewClient(srv.URL, newTestSession(t, "tok")))

	rec, err := gw.PerformAction(t.Context(), "wo-1", "pauseService", &secondary.ActionPayloadRecord{Reason: "waiting for parts"})
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "/WorkOrders/wo-1/pause-service", gotPath)
	assert.Equal(t, map[string]any{"reason": "waiting for parts"}, gotBody)
	assert.Equal(t, "Paused", rec.Status)

	_, err = gw.PerformAction(t.Context(), "wo-1", "levitate", nil)
	assert.Error(t, err)
}

func TestLoginAcceptsAlternateTokenKeys(t *testing.T) {
	responses := []map[string]any{
		{"token": "t1"},
		{"accessToken": "t2"},
		{"access_token": "t3"},
		{"jwt": "t4", "role": "Admin"},
	}
	want := []string{"t1", "t2", "t3", "t4"}

	for i, resp := range responses {
		r := chi.NewRouter()
		r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
			json.NewEncoder(w).Encode(resp)
		})
		srv := httptest.NewServer(r)

		gw := NewAuthGateway(NewClient(srv.URL, newTestSession(t, "")))
		rec, err := gw.Login(t.Context(), "ops@example.com", "hunter2")
		srv.Close()

		require.NoError(t, err)
		assert.Equal(t, want[i], rec.Token)
	}
}

func TestDirectorySearchResolvesLabels(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/Customers", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "garcia", req.URL.Query().Get("search"))
		assert.Equal(t, "10", req.URL.Query().Get("pageSize"))
		json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{
			{"id": "c1", "name": "García Plumbing", "email": "info@garcia.example"},
			{"id": "c2", "fullName": "Ana García", "phone": "+34 600 000 000"},
			{"id": "c3", "email": "only@email.example"},
		}})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	gw := NewDirectoryGateway(NewClient(srv.URL, newTestSession(t, "tok")))
	records, err := gw.SearchCustomers(t.Context(), "garcia", 10)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "García Plumbing", records[0].Label)
	assert.Equal(t, "info@garcia.example", records[0].Subtitle)
	assert.Equal(t, "Ana García", records[1].Label)
	assert.Equal(t, "+34 600 000 000", records[1].Subtitle)
	assert.Equal(t, "only@email.example", records[2].Label)
}

func TestDocumentDetailDecoding(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/Documents/{id}", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(documentDetailDTO{
			Doc: documentDTO{ID: "d1", Number: "Q-0001", Type: "Quote", Status: "Open", Currency: "EUR", Subtotal: 200, TaxTotal: 21, Total: 221},
			Lines: []documentLineDTO{
				{ID: 1, DocumentID: "d1", Kind: "Material", Description: "Pipe", Qty: 1, UnitPrice: 100, TaxRate: 21, Total: 121},
			},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	gw := NewDocumentGateway(NewClient(srv.URL, newTestSession(t, "tok")))
	doc, lines, err := gw.GetByID(t.Context(), "d1")
	require.NoError(t, err)

	assert.Equal(t, "Q-0001", doc.Number)
	require.Len(t, lines, 1)
	assert.Equal(t, "Pipe", lines[0].Description)
	assert.InDelta(t, 121.0, lines[0].Total, 1e-9)
}

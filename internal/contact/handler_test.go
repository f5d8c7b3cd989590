// AngelaMos | 2026
// handler_test.go

package contact

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/contacts-api/internal/core"
	"github.com/carterperez-dev/templates/contacts-api/internal/middleware"
)

type testAPI struct {
	router chi.Router
	owner  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	owner := uuid.NewString()

	h := NewHandler(NewService(newMemoryRepo()))
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r, func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{UserID: owner})
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		})
	})

	return &testAPI{router: r, owner: owner}
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) core.ErrorResponse {
	t.Helper()
	var body core.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (a *testAPI) create(t *testing.T, body string) Response {
	t.Helper()
	rec := a.do(http.MethodPost, "/api/contacts", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	return c
}

func TestCreateContact(t *testing.T) {
	api := newTestAPI(t)

	c := api.create(t, `{"name":"Ann","email":"ann@example.com","phone":"555"}`)
	assert.Equal(t, "Ann", c.Name)
	assert.Equal(t, api.owner, c.Owner)
	assert.False(t, c.Favorite)
	assert.NotEmpty(t, c.ID)
}

func TestCreateContactValidation(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "missing phone",
			body:    `{"name":"Ann","email":"ann@example.com"}`,
			message: `"phone" is required`,
		},
		{
			name:    "bad email",
			body:    `{"name":"Ann","email":"nope","phone":"1"}`,
			message: `"email" must be a valid email`,
		},
		{
			name:    "favorite not boolean",
			body:    `{"name":"Ann","email":"ann@example.com","phone":"1","favorite":"yes"}`,
			message: `"favorite" must be a boolean`,
		},
		{
			name:    "unknown field",
			body:    `{"name":"Ann","email":"ann@example.com","phone":"1","age":3}`,
			message: `"age" is not allowed`,
		},
		{
			name:    "empty object",
			body:    `{}`,
			message: "missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/api/contacts", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec).Message)
		})
	}
}

func TestFavoriteEndpoint(t *testing.T) {
	api := newTestAPI(t)
	c := api.create(t, `{"name":"Ann","email":"ann@example.com","phone":"555"}`)
	path := "/api/contacts/" + c.ID + "/favorite"

	rec := api.do(http.MethodPatch, path, `{"favorite":"yes"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPatch, path, `{"favorite":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.Favorite)

	rec = api.do(http.MethodGet, "/api/contacts/"+c.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"favorite":true`)
}

func TestUpdateAndDeleteEndpoints(t *testing.T) {
	api := newTestAPI(t)
	c := api.create(t, `{"name":"Ann","email":"ann@example.com","phone":"555"}`)

	rec := api.do(http.MethodPut, "/api/contacts/"+c.ID, `{"name":"Annie"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Annie"`)

	rec = api.do(http.MethodPut, "/api/contacts/"+c.ID, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodDelete, "/api/contacts/"+c.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Contact deleted"}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/contacts/"+c.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/contacts/not-an-id", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Contact not found", decodeError(t, rec).Message)
}

func TestListEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.create(t, `{"name":"Ann","email":"ann@example.com","phone":"1"}`)
	second := api.create(t, `{"name":"Bob","email":"bob@example.com","phone":"2"}`)
	api.create(t, `{"name":"Cat","email":"cat@example.com","phone":"3"}`)

	rec := api.do(http.MethodGet, "/api/contacts?page=2&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page []Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page, 1)
	assert.Equal(t, second.ID, page[0].ID)

	rec = api.do(http.MethodGet, "/api/contacts?page=abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page, 3)
}

func TestListEndpointPastLastPage(t *testing.T) {
	api := newTestAPI(t)
	api.create(t, `{"name":"Ann","email":"ann@example.com","phone":"1"}`)

	rec := api.do(http.MethodGet, "/api/contacts?page=9223372036854775807", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page []Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Empty(t, page)
}

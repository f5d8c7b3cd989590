// AngelaMos | 2026
// validation_test.go

package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name     string `json:"name"     validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email_pattern"`
	Tier     string `json:"tier"     validate:"omitempty,oneof=starter pro business"`
	Favorite *bool  `json:"favorite"`
}

func decode(t *testing.T, body string) (sampleRequest, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dst sampleRequest
	return dst, DecodeJSON(req, &dst)
}

func messageOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return Classify(err).Message
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "missing required fields"},
		{"empty object", "{}", "missing required fields"},
		{"not json", "nope", "invalid request body"},
		{"unknown field", `{"name":"abc","extra":1}`, `"extra" is not allowed`},
		{"type mismatch", `{"favorite":"yes"}`, `"favorite" must be a boolean`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(t, tt.body)
			assert.Equal(t, tt.want, messageOf(t, err))
		})
	}
}

func TestDecodeJSONValid(t *testing.T) {
	dst, err := decode(t, `{"name":"Alice","email":"a@b.com","favorite":true}`)
	require.NoError(t, err)
	assert.Equal(t, "Alice", dst.Name)
	require.NotNil(t, dst.Favorite)
	assert.True(t, *dst.Favorite)
}

func TestValidateStruct(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		req  sampleRequest
		want string
	}{
		{"missing name", sampleRequest{Email: "a@b.com"}, `"name" is required`},
		{"short name", sampleRequest{Name: "Al", Email: "a@b.com"}, `"name" length must be at least 3 characters long`},
		{"bad email", sampleRequest{Name: "Alice", Email: "a@b"}, `"email" must be a valid email`},
		{"bad tier", sampleRequest{Name: "Alice", Email: "a@b.com", Tier: "gold"}, `"tier" must be one of [starter, pro, business]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(v, tt.req)
			assert.Equal(t, tt.want, messageOf(t, err))
			assert.Equal(t, KindValidation, Classify(err).Kind)
		})
	}

	assert.NoError(t, ValidateStruct(v, sampleRequest{Name: "Alice", Email: "a.b@c-d.org"}))
}

func TestIsEmailPattern(t *testing.T) {
	assert.True(t, IsEmailPattern("john.doe@mail.com"))
	assert.False(t, IsEmailPattern("john@"))
	assert.False(t, IsEmailPattern("john@mail.c"))
}

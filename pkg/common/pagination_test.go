package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPageRequest_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/digests", nil)

	params := ExtractPageRequest(r)

	assert.Equal(t, DefaultPageLimit, params.Limit)
	assert.Empty(t, params.Cursor)
}

func TestExtractPageRequest_LimitAndCursor(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/digests?limit=5&cursor=abc123", nil)

	params := ExtractPageRequest(r)

	assert.Equal(t, 5, params.Limit)
	assert.Equal(t, "abc123", params.Cursor)
}

func TestExtractPageRequest_LimitCapped(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/digests?limit=5000", nil)

	assert.Equal(t, MaxPageLimit, ExtractPageRequest(r).Limit)
}

func TestExtractPageRequest_InvalidLimitIgnored(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/digests?limit=-3", nil)

	assert.Equal(t, DefaultPageLimit, ExtractPageRequest(r).Limit)
}

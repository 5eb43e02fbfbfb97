package common

import (
	"net/http"
	"strconv"
)

// Listing limits. The cap keeps one page within a single backing-store
// listing call.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest represents cursor pagination parameters. Cursor is the opaque
// continuation token from a previous response, resubmitted verbatim.
type PageRequest struct {
	Limit  int    `json:"limit"`
	Cursor string `json:"cursor,omitempty"`
}

// ExtractPageRequest extracts pagination parameters from a request
func ExtractPageRequest(r *http.Request) PageRequest {
	params := PageRequest{
		Limit:  DefaultPageLimit,
		Cursor: r.URL.Query().Get("cursor"),
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			if l > MaxPageLimit {
				l = MaxPageLimit
			}
			params.Limit = l
		}
	}

	return params
}

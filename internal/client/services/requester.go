package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ErrMissingID is returned before any request is sent when a resource
// identifier is empty.
var ErrMissingID = errors.New("resource id is required")

// ErrInvalidID is returned for identifiers that would not address a single
// resource once placed in a URL path, such as "." and "..".
var ErrInvalidID = errors.New("invalid resource id")

// Requester is the transport the services are built on. *gateway.Gateway
// satisfies it; tests substitute fakes.
type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

func resourcePath(collection, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}
	// PathEscape keeps dot segments, and URL resolution would collapse them
	// onto the collection or its parent
	if id == "." || id == ".." {
		return "", ErrInvalidID
	}
	return collection + "/" + url.PathEscape(id), nil
}

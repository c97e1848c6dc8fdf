package domain

import (
	"context"
	"net/http"
)

// HTTPAdapter defines the interface for outbound HTTP operations.
type HTTPAdapter interface {
	Post(ctx context.Context, url string, payload any) (*http.Response, error)
}

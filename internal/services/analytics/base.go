package analytics

import (
	"context"
	"fmt"
	"time"

	xhttp "github.com/Manzely360/3omla-cloud-sub001/pkg/http"
)

// httpBase centralizes client construction and JSON request handling for the
// remote analytics clients.
type httpBase struct {
	baseURL string
	client  *xhttp.Client
}

func newHTTPBase(baseURL string, timeout time.Duration) *httpBase {
	return &httpBase{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// getJSON issues a GET under baseURL and decodes JSON into dest.
func (b *httpBase) getJSON(ctx context.Context, path string, query map[string][]string, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("analytics http client not initialized")
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         b.baseURL + path,
		QueryParams: query,
	}, dest)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return nil
}

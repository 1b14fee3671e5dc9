package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"gitlab.com/epixlabs/contact-relay/pkg/model"
)

// DefaultPath is where the relay endpoint is mounted.
const DefaultPath = "/api/contact"

// HTTPRelay sends submissions to the relay endpoint at URL.
type HTTPRelay struct {
	URL    string
	Client *http.Client
}

// NewHTTPRelay returns a relay client for the endpoint at url.
func NewHTTPRelay(url string) *HTTPRelay {
	return &HTTPRelay{URL: url, Client: http.DefaultClient}
}

// Send posts the submission as JSON. The status code is not inspected, the ok flag of the body
// decides. A body that is not JSON counts as a network error.
func (r *HTTPRelay) Send(ctx context.Context, submission model.ContactSubmission) (model.Response, error) {
	payload, err := json.Marshal(submission)
	if err != nil {
		return model.Response{}, fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(payload))
	if err != nil {
		return model.Response{}, fmt.Errorf("create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return model.Response{}, fmt.Errorf("relay request failed: %w", err)
	}
	defer res.Body.Close()

	var response model.Response
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return model.Response{}, fmt.Errorf("decode relay response (status %d): %w", res.StatusCode, err)
	}
	return response, nil
}

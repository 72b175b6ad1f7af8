package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// encodeBody marshals in, or returns nil for a nil body.
func encodeBody(in any) ([]byte, error) {
	if in == nil {
		return nil, nil
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%w: encode body: %w", ErrBuildRequest, err)
	}
	return raw, nil
}

// roundTrip performs one request and returns the status and full body.
// A zero status means no response was received.
func roundTrip(
	ctx context.Context,
	hc *http.Client,
	method, url string,
	body []byte,
	headers http.Header,
) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrBuildRequest, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, respBody, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// decodeBody decodes a successful response into out. A *string target
// receives the raw body, for plain-text endpoints.
func decodeBody(status int, body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = string(body)
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{
			Kind:    KindHTTP,
			Message: msgRequestFailed,
			Status:  status,
			Err:     fmt.Errorf("failed to decode response: %w", err),
		}
	}
	return nil
}

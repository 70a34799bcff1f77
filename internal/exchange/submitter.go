package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSubmitter submits chunks to a remote bulk-import endpoint as JSON
// over HTTP. Retrying is deliberately left to the caller's reverse proxy
// or a wrapping Submitter.
type HTTPSubmitter struct {
	URL    string
	Client *http.Client
}

// NewHTTPSubmitter returns a submitter for the given endpoint.
func NewHTTPSubmitter(url string) *HTTPSubmitter {
	return &HTTPSubmitter{
		URL: url,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (s *HTTPSubmitter) SubmitChunk(ctx context.Context, request BulkImportRequest) (BulkImportResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return BulkImportResponse{}, fmt.Errorf("could not encode bulk import request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return BulkImportResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return BulkImportResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return BulkImportResponse{}, fmt.Errorf("bulk import endpoint returned HTTP %d: %s", resp.StatusCode, payload)
	}

	var response BulkImportResponse
	err = json.NewDecoder(resp.Body).Decode(&response)
	if err != nil {
		return BulkImportResponse{}, fmt.Errorf("could not decode bulk import response: %w", err)
	}

	return response, nil
}

// NoopSubmitter accepts every chunk without talking to a remote store.
// It is used when no remote endpoint is configured.
type NoopSubmitter struct{}

func (NoopSubmitter) SubmitChunk(_ context.Context, request BulkImportRequest) (BulkImportResponse, error) {
	return BulkImportResponse{
		Created: CreatedCounts{
			Friends:  len(request.Friends),
			Groups:   len(request.Groups),
			Expenses: len(request.Expenses),
		},
	}, nil
}

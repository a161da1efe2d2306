package kb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kisan-depin/dmrv/pkg/errors"
	"github.com/kisan-depin/dmrv/pkg/httputil"
)

// UpstreamClient queries an external streaming document-store service for
// live-indexed answers. It is the optional upstream behind [Agent]; any
// failure makes the agent fall back to the local keyword matcher.
type UpstreamClient struct {
	baseURL string
	http    *http.Client
}

// NewUpstreamClient creates a client for the document-store endpoint,
// e.g. "http://localhost:8080".
func NewUpstreamClient(baseURL string) *UpstreamClient {
	return &UpstreamClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type upstreamRequest struct {
	Prompt string `json:"prompt"`
}

type upstreamResponse struct {
	Response string `json:"response"`
}

// Query forwards the question to the document store's answer endpoint.
func (c *UpstreamClient) Query(ctx context.Context, question, language string) (Response, error) {
	payload, err := json.Marshal(upstreamRequest{Prompt: question})
	if err != nil {
		return Response{}, err
	}

	var answer string
	err = httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/v1/pw_ai_answer", bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return httputil.Retryable(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return httputil.Retryable(fmt.Errorf("document store returned %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("document store returned %s", resp.Status)
		}

		var body upstreamResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return err
		}
		answer = body.Response
		return nil
	})
	if err != nil {
		return Response{}, errors.Wrap(errors.ErrCodeUpstreamUnavailable, err, "query document store")
	}

	return Response{
		Answer:     answer,
		Confidence: 0.95,
		Language:   language,
		Reasoning: fmt.Sprintf(
			"1. Received query: %q\n"+
				"2. Forwarded to streaming document store\n"+
				"3. Store extracted chunks from the live environmental-law index\n"+
				"4. Generated real-time grounded response",
			truncate(question, 80)),
	}, nil
}

// Ensure UpstreamClient implements Answerer.
var _ Answerer = (*UpstreamClient)(nil)

package omdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

type Request struct {
	Operation string
	URL       string
	Headers   map[string]string
}

// get performs a single GET bounded by the client timeout and returns the
// body of a 200 response.
func (c *Client) get(ctx context.Context, req *Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("omdb: build %s request: %w", req.Operation, err)
	}
	for k, v := range req.Headers {
		request.Header.Set(k, v)
	}

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redact(urlErr.URL)
		}
		return nil, fmt.Errorf("omdb: %s request: %w", req.Operation, err)
	}
	defer func() {
		_ = response.Body.Close()
	}()

	c.logger.Debug("omdb request",
		zap.String("operation", req.Operation),
		zap.String("url", redact(req.URL)),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode != http.StatusOK {
		return nil, &RequestFailedError{StatusCode: response.StatusCode}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("omdb: read %s response: %w", req.Operation, err)
	}
	return body, nil
}

func do[T any](ctx context.Context, c *Client, req *Request) (*T, error) {
	if req.Headers == nil {
		req.Headers = map[string]string{"Accept": "application/json"}
	}

	body, err := c.get(ctx, req)
	if err != nil {
		return nil, err
	}

	// Numbers stay json.Number so large integers survive untouched.
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var result T
	if err := dec.Decode(&result); err != nil {
		return nil, &DecodeError{Err: err}
	}
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after the JSON value")
		}
		return nil, &DecodeError{Err: err}
	}

	return &result, nil
}

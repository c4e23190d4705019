package omdb

import (
	"context"
	"fmt"
	"strings"
)

// Find runs a free-text search. OMDb answers with a list of matches under
// the "Search" key. A blank key is rejected with ErrInvalidArgument without
// sending a request.
func (c *Client) Find(ctx context.Context, key string) (any, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%w: search key is required", ErrInvalidArgument)
	}

	res, err := do[any](ctx, c, &Request{
		Operation: "search",
		URL:       endpointURL(c.baseURL, c.metadataQuery(SelectorSearch, key, 0)),
	})
	if err != nil {
		return nil, err
	}

	return *res, nil
}

package omdb

import (
	"context"
	"fmt"
	"strings"
)

// SearchMovies is Find decoded into SearchResults. Only the first page of
// results is returned.
func (c *Client) SearchMovies(ctx context.Context, key string) (*SearchResults, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%w: search key is required", ErrInvalidArgument)
	}

	results, err := do[SearchResults](ctx, c, &Request{
		Operation: "search movies",
		URL:       endpointURL(c.baseURL, c.metadataQuery(SelectorSearch, key, 0)),
	})
	if err != nil {
		return nil, err
	}
	if results.Response == "False" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, results.Error)
	}

	return results, nil
}

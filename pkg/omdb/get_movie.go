package omdb

import (
	"context"
	"fmt"
)

// GetMovie is FindByID decoded into a Movie.
func (c *Client) GetMovie(ctx context.Context, id string) (*Movie, error) {
	if !IsValidID(id) {
		return nil, fmt.Errorf("%w: invalid IMDb id %q", ErrInvalidArgument, id)
	}

	movie, err := do[Movie](ctx, c, &Request{
		Operation: "get movie",
		URL:       endpointURL(c.baseURL, c.metadataQuery(SelectorID, id, 0)),
	})
	if err != nil {
		return nil, err
	}
	if movie.Response == "False" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, movie.Error)
	}

	return movie, nil
}

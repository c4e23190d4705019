package omdb

import (
	"context"
	"fmt"
)

// FindByID looks a title up by its IMDb identifier.
func (c *Client) FindByID(ctx context.Context, id string) (any, error) {
	if !IsValidID(id) {
		return nil, fmt.Errorf("%w: invalid IMDb id %q", ErrInvalidArgument, id)
	}

	res, err := do[any](ctx, c, &Request{
		Operation: "find by id",
		URL:       endpointURL(c.baseURL, c.metadataQuery(SelectorID, id, 0)),
	})
	if err != nil {
		return nil, err
	}

	return *res, nil
}

package omdb

import (
	"context"
	"fmt"
)

// FindPoster downloads the poster of a title. A height of zero or less uses
// the client's configured poster height (DefaultPosterHeight unless set). The body is returned as received, usually a JPEG.
func (c *Client) FindPoster(ctx context.Context, id string, height int) ([]byte, error) {
	if !IsValidID(id) {
		return nil, fmt.Errorf("%w: invalid IMDb id %q", ErrInvalidArgument, id)
	}

	return c.get(ctx, &Request{
		Operation: "find poster",
		URL:       endpointURL(c.posterURL, c.posterQuery(id, height)),
	})
}

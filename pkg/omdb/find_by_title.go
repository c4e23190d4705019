package omdb

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// FindByTitle looks a title up by name. A year greater than zero narrows the
// lookup to that release year for this call only. A blank title is rejected
// with ErrInvalidArgument without sending a request.
func (c *Client) FindByTitle(ctx context.Context, title string, year int) (any, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}

	c.logger.Debug("finding title", zap.String("title", title), zap.Int("year", year))

	res, err := do[any](ctx, c, &Request{
		Operation: "find by title",
		URL:       endpointURL(c.baseURL, c.metadataQuery(SelectorTitle, title, year)),
	})
	if err != nil {
		return nil, err
	}

	return *res, nil
}

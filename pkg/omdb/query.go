package omdb

import (
	"net/url"
	"strconv"
)

// Selector names the query parameter that picks the lookup mode.
type Selector string

const (
	SelectorID     = Selector("i")
	SelectorTitle  = Selector("t")
	SelectorSearch = Selector("s")
)

// metadataQuery assembles the parameters of a metadata lookup. Unset values
// are left out of the query instead of being sent empty.
func (c *Client) metadataQuery(selector Selector, value string, year int) url.Values {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	if year > 0 {
		params.Set("y", strconv.Itoa(year))
	}
	if c.typ != MediaTypeAny {
		params.Set("type", string(c.typ))
	}
	if c.plot != "" {
		params.Set("plot", string(c.plot))
	}
	params.Set("tomatoes", strconv.FormatBool(c.tomatoes))
	params.Set("r", "json")
	params.Set("v", "1")
	params.Set(string(selector), value)
	return params
}

func (c *Client) posterQuery(id string, height int) url.Values {
	if height <= 0 {
		height = c.height
	}
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", id)
	params.Set("height", strconv.Itoa(height))
	return params
}

// endpointURL copies base and attaches params, leaving base untouched. A
// query already present on base is kept; params win on conflicting keys.
func endpointURL(base *url.URL, params url.Values) string {
	u := *base
	query := base.Query()
	for k, v := range params {
		query[k] = v
	}
	u.RawQuery = query.Encode()
	return u.String()
}

// redact hides the api key of a request URL before it reaches logs or errors.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("apikey") {
		q.Set("apikey", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

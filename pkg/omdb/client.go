package omdb

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL      = "http://www.omdbapi.com/"
	DefaultPosterURL    = "http://img.omdbapi.com/"
	DefaultTimeout      = 5 * time.Second
	DefaultPosterHeight = 1000
)

// Plot selects the plot verbosity returned by metadata lookups.
type Plot string

const (
	PlotShort = Plot("short")
	PlotFull  = Plot("full")
)

// MediaType restricts metadata lookups to one kind of title. The zero value
// disables the filter.
type MediaType string

const (
	MediaTypeAny     = MediaType("")
	MediaTypeMovie   = MediaType("movie")
	MediaTypeSeries  = MediaType("series")
	MediaTypeEpisode = MediaType("episode")
)

// Doer is the subset of *http.Client used by the client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	APIKey    string
	BaseURL   string
	PosterURL string
	Timeout   time.Duration

	// PosterHeight is used by FindPoster when the call asks for no height.
	// Zero or less means DefaultPosterHeight.
	PosterHeight int

	Plot     Plot
	Type     MediaType
	Tomatoes bool

	HTTPClient Doer
	// Logger receives debug lines for every request. Nil disables logging.
	Logger *zap.Logger
}

// Client represents an OMDb API client.
//
// The filters changed by SetPlot, SetType and SetTomatoes are not guarded:
// changing them while lookups run on other goroutines is a data race.
type Client struct {
	apiKey    string
	baseURL   *url.URL
	posterURL *url.URL
	timeout   time.Duration
	height    int

	plot     Plot
	typ      MediaType
	tomatoes bool

	httpClient Doer
	logger     *zap.Logger
}

// NewClient creates a new OMDb API client
func NewClient(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api key is required", ErrInvalidArgument)
	}

	baseURL, err := parseEndpoint(opts.BaseURL, DefaultBaseURL)
	if err != nil {
		return nil, fmt.Errorf("omdb: parse base url: %w", err)
	}
	posterURL, err := parseEndpoint(opts.PosterURL, DefaultPosterURL)
	if err != nil {
		return nil, fmt.Errorf("omdb: parse poster url: %w", err)
	}

	client := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		posterURL:  posterURL,
		timeout:    opts.Timeout,
		height:     opts.PosterHeight,
		plot:       PlotShort,
		tomatoes:   opts.Tomatoes,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
	if client.timeout <= 0 {
		client.timeout = DefaultTimeout
	}
	if client.height <= 0 {
		client.height = DefaultPosterHeight
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	if client.logger == nil {
		client.logger = zap.NewNop()
	}
	if opts.Plot != "" {
		if err := client.SetPlot(opts.Plot); err != nil {
			return nil, err
		}
	}
	if err := client.SetType(opts.Type); err != nil {
		return nil, err
	}

	return client, nil
}

// SetPlot changes the plot verbosity of subsequent metadata lookups.
func (c *Client) SetPlot(plot Plot) error {
	switch plot {
	case PlotShort, PlotFull:
		c.plot = plot
		return nil
	}
	return fmt.Errorf("%w: unknown plot %q", ErrInvalidArgument, plot)
}

// SetType changes the media type filter of subsequent metadata lookups.
// MediaTypeAny removes the filter.
func (c *Client) SetType(typ MediaType) error {
	switch typ {
	case MediaTypeAny, MediaTypeMovie, MediaTypeSeries, MediaTypeEpisode:
		c.typ = typ
		return nil
	}
	return fmt.Errorf("%w: unknown media type %q", ErrInvalidArgument, typ)
}

// SetTomatoes toggles the Rotten Tomatoes rating aggregates in metadata lookups.
func (c *Client) SetTomatoes(include bool) {
	c.tomatoes = include
}

func (c *Client) Plot() Plot             { return c.plot }
func (c *Client) Type() MediaType        { return c.typ }
func (c *Client) Tomatoes() bool         { return c.tomatoes }
func (c *Client) Timeout() time.Duration { return c.timeout }
func (c *Client) PosterHeight() int      { return c.height }

func parseEndpoint(raw, fallback string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute url", raw)
	}
	return u, nil
}

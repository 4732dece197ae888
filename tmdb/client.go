// Package tmdb is a minimal client for the TMDB v3 API covering the
// calls the catalog engine needs: discover, search, item detail and
// external-id lookup.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

// ImageBaseURL is the TMDB image CDN prefix for poster/backdrop paths.
const ImageBaseURL = "https://image.tmdb.org/t/p"

// Per-call timeouts. Listing calls are given more headroom than the
// cheaper per-item lookups.
const (
	listTimeout       = 10 * time.Second
	detailTimeout     = 8 * time.Second
	externalIDTimeout = 6 * time.Second
)

// Client talks to the TMDB API. Zero value is not usable; construct
// with New.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	apiKey  string
	limiter *rate.Limiter
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

// WithLimiter replaces the default rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// New creates a TMDB client. The API key is sent as the api_key query
// parameter on every request.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("apiKey required")
	}
	u, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		http:    http.DefaultClient,
		baseURL: u,
		apiKey:  apiKey,
		// TMDB allows ~50 req/s; stay under it.
		limiter: rate.NewLimiter(rate.Limit(40), 10),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// DiscoverQuery is the criteria set for a discover call.
type DiscoverQuery struct {
	Kind     string // KindMovie or KindSeries
	Language string // original language, ISO 639-1
	Region   string // optional territory, ISO 3166-1
	MinVotes int    // optional vote_count.gte
	MaxDate  string // release date upper bound, YYYY-MM-DD
	Page     int
}

// Discover returns one page of the discover listing, sorted by release
// date descending.
func (c *Client) Discover(ctx context.Context, q DiscoverQuery) (*Page, error) {
	params := map[string]string{
		"with_original_language": q.Language,
		"page":                   strconv.Itoa(q.Page),
	}
	if q.Kind == KindSeries {
		params["sort_by"] = "first_air_date.desc"
		if q.MaxDate != "" {
			params["first_air_date.lte"] = q.MaxDate
		}
	} else {
		params["sort_by"] = "primary_release_date.desc"
		if q.MaxDate != "" {
			params["primary_release_date.lte"] = q.MaxDate
		}
	}
	if q.Region != "" {
		params["region"] = q.Region
	}
	if q.MinVotes > 0 {
		params["vote_count.gte"] = strconv.Itoa(q.MinVotes)
	}

	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var page Page
	if err := c.doJSON(ctx, "/discover/"+q.Kind, params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search returns one page of text-search results for the kind.
func (c *Client) Search(ctx context.Context, kind, query string, pageNum int) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var page Page
	err := c.doJSON(ctx, "/search/"+kind, map[string]string{
		"query": query,
		"page":  strconv.Itoa(pageNum),
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Detail fetches the full record for an item including the appended
// sub-resources the language classifier inspects.
func (c *Client) Detail(ctx context.Context, kind string, id int64) (*Detail, error) {
	appended := "translations,release_dates,credits"
	if kind == KindSeries {
		appended = "translations,content_ratings,credits"
	}

	ctx, cancel := context.WithTimeout(ctx, detailTimeout)
	defer cancel()

	var d Detail
	err := c.doJSON(ctx, fmt.Sprintf("/%s/%d", kind, id), map[string]string{
		"append_to_response": appended,
	}, &d)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ExternalIDs fetches the cross-site identifiers for an item.
func (c *Client) ExternalIDs(ctx context.Context, kind string, id int64) (ExternalIDs, error) {
	ctx, cancel := context.WithTimeout(ctx, externalIDTimeout)
	defer cancel()

	var ids ExternalIDs
	err := c.doJSON(ctx, fmt.Sprintf("/%s/%d/external_ids", kind, id), nil, &ids)
	return ids, err
}

func (c *Client) doJSON(ctx context.Context, p string, q map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := *c.baseURL
	u.Path = path.Join(u.Path, p)
	qq := u.Query()
	qq.Set("api_key", c.apiKey)
	for k, v := range q {
		qq.Set(k, v)
	}
	u.RawQuery = qq.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: %s: %s", p, resp.Status, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

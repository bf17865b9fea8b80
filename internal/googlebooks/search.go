package googlebooks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// Search is a lazy, cached view over one search's result set. Request
// parameters are fixed at construction; results are fetched page by page
// on first access and kept for the lifetime of the Search.
type Search struct {
	client   *Client
	query    string
	params   url.Values // fixed request parameters, never mutated after construction
	pageSize int

	mu         sync.Mutex
	cache      map[int]*Volume
	totalItems int
}

// Search creates a paginated result view for the given structured query.
func (c *Client) Search(query *Query, opts ...SearchOption) (*Search, error) {
	return c.newSearch(query.String(), opts...)
}

// SearchText creates a paginated result view for free-form text. The
// provider reserves + - : " as query operators, so those are stripped or
// replaced before sending to prevent accidental operator injection.
func (c *Client) SearchText(text string, opts ...SearchOption) (*Search, error) {
	return c.newSearch(sanitizeQueryText(text), opts...)
}

var querySanitizer = strings.NewReplacer(
	"+", " ",
	"-", " ",
	":", " ",
	`"`, "",
	"'", "",
)

func sanitizeQueryText(text string) string {
	return querySanitizer.Replace(text)
}

func (c *Client) newSearch(query string, opts ...SearchOption) (*Search, error) {
	settings := searchSettings{pageSize: c.pageSize}
	for _, opt := range opts {
		opt(&settings)
	}

	params := url.Values{}
	params.Set("projection", "full")

	if settings.language != "" {
		if len(settings.language) != 2 {
			return nil, fmt.Errorf("%w: language code must be 2 characters, got %q", ErrInvalidArgument, settings.language)
		}
		params.Set("langRestrict", settings.language)
	}
	if settings.filter != "" {
		if err := validateOption("filter", validFilters, settings.filter); err != nil {
			return nil, err
		}
		params.Set("filter", string(settings.filter))
	}
	if settings.printType != "" {
		if err := validateOption("print type", validPrintTypes, settings.printType); err != nil {
			return nil, err
		}
		params.Set("printType", string(settings.printType))
	}
	if settings.orderBy != "" {
		if err := validateOption("sort order", validOrders, settings.orderBy); err != nil {
			return nil, err
		}
		params.Set("orderBy", string(settings.orderBy))
	}
	if settings.downloadable {
		params.Set("download", "epub")
	}

	return &Search{
		client:   c,
		query:    query,
		params:   params,
		pageSize: settings.pageSize,
		cache:    make(map[int]*Volume),
	}, nil
}

type searchResponse struct {
	Kind       string           `json:"kind"`
	TotalItems int              `json:"totalItems"`
	Items      []volumeResource `json:"items"`
}

// Get returns the volume at the given zero-based result index, fetching
// its containing page from the provider if it has not been seen yet. A
// page fetch caches every returned volume, so sequential access costs one
// request per page. Returns ErrNotFound when the result set ends before
// the requested index.
func (s *Search) Get(ctx context.Context, index int) (*Volume, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: index must be non-negative, got %d", ErrInvalidArgument, index)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if volume, ok := s.cache[index]; ok {
		return volume, nil
	}

	pageStart := (index / s.pageSize) * s.pageSize
	if err := s.fetchPage(ctx, pageStart); err != nil {
		return nil, err
	}

	if volume, ok := s.cache[index]; ok {
		return volume, nil
	}
	return nil, fmt.Errorf("%w: no result at index %d", ErrNotFound, index)
}

// fetchPage fetches one page of results and caches every volume at its
// absolute index. Callers must hold s.mu.
func (s *Search) fetchPage(ctx context.Context, pageStart int) error {
	params := cloneValues(s.params)
	params.Set("startIndex", strconv.Itoa(pageStart))
	params.Set("maxResults", strconv.Itoa(s.pageSize))

	var resp searchResponse
	endpoint := s.client.volumesEndpoint(s.query, params)
	if err := s.client.getJSON(ctx, endpoint, &resp); err != nil {
		return err
	}

	s.totalItems = resp.TotalItems

	for i := range resp.Items {
		volume, err := decodeVolume(&resp.Items[i])
		if err != nil {
			return err
		}
		s.cache[pageStart+i] = volume
	}
	return nil
}

// TotalItems reports the result count from the most recent page fetch, or
// zero before any fetch. The provider does not guarantee the field on
// every response, so treat it as advisory; a short page is the definitive
// end-of-results signal.
func (s *Search) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems
}

// Query returns the rendered query string this search was built from.
func (s *Search) Query() string {
	return s.query
}

package googlebooks

import (
	"fmt"
	"slices"
)

// Filter restricts search results by volume availability.
type Filter string

const (
	// FilterPartial restricts results to volumes where at least part of
	// the text is previewable.
	FilterPartial Filter = "partial"
	// FilterFull restricts results to volumes where all of the text is
	// viewable.
	FilterFull Filter = "full"
	// FilterFreeEbooks restricts results to free Google eBooks.
	FilterFreeEbooks Filter = "free-ebooks"
	// FilterPaidEbooks restricts results to Google eBooks for sale.
	FilterPaidEbooks Filter = "paid-ebooks"
	// FilterEbooks restricts results to Google eBooks, paid or free.
	FilterEbooks Filter = "ebooks"
)

// PrintType restricts search results to a publication type.
type PrintType string

const (
	// PrintTypeAll does not restrict by print type (provider default).
	PrintTypeAll PrintType = "all"
	// PrintTypeBooks returns only results that are books.
	PrintTypeBooks PrintType = "books"
	// PrintTypeMagazines returns only results that are magazines.
	PrintTypeMagazines PrintType = "magazines"
)

// OrderBy selects the sort order of search results.
type OrderBy string

const (
	// OrderByRelevance sorts by relevance (provider default).
	OrderByRelevance OrderBy = "relevance"
	// OrderByNewest sorts by publication date, newest first.
	OrderByNewest OrderBy = "newest"
)

var (
	validFilters    = []Filter{FilterPartial, FilterFull, FilterFreeEbooks, FilterPaidEbooks, FilterEbooks}
	validPrintTypes = []PrintType{PrintTypeAll, PrintTypeBooks, PrintTypeMagazines}
	validOrders     = []OrderBy{OrderByRelevance, OrderByNewest}
)

func validateOption[T ~string](name string, allowed []T, value T) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("%w: unknown %s %q (allowed: %v)", ErrInvalidArgument, name, string(value), allowed)
}

type searchSettings struct {
	language     string
	filter       Filter
	printType    PrintType
	orderBy      OrderBy
	downloadable bool
	pageSize     int
}

// SearchOption configures a search at construction time.
type SearchOption func(*searchSettings)

// WithLanguage restricts results to the given two-letter ISO-639-1 code.
func WithLanguage(code string) SearchOption {
	return func(s *searchSettings) {
		s.language = code
	}
}

// WithFilter restricts results by availability.
func WithFilter(filter Filter) SearchOption {
	return func(s *searchSettings) {
		s.filter = filter
	}
}

// WithPrintType restricts results to a publication type.
func WithPrintType(printType PrintType) SearchOption {
	return func(s *searchSettings) {
		s.printType = printType
	}
}

// WithOrder selects the sort order of results.
func WithOrder(order OrderBy) SearchOption {
	return func(s *searchSettings) {
		s.orderBy = order
	}
}

// WithDownloadableOnly restricts results to volumes available as epub
// downloads.
func WithDownloadableOnly() SearchOption {
	return func(s *searchSettings) {
		s.downloadable = true
	}
}

// WithSearchPageSize overrides the client's page size for this search,
// clamped to the provider's allowed range.
func WithSearchPageSize(size int) SearchOption {
	return func(s *searchSettings) {
		if size > 0 {
			s.pageSize = clampPageSize(size)
		}
	}
}

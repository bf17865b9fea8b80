package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/lepinkainen/libris/internal/config"
	"github.com/lepinkainen/libris/internal/googlebooks"
	"github.com/lepinkainen/libris/internal/tui"
)

// SearchCmd represents the search command
type SearchCmd struct {
	Terms []string `arg:"" optional:"" help:"Full-text search terms"`

	Exact   bool     `help:"Treat the terms as one exact phrase"`
	Exclude []string `short:"x" help:"Full-text terms that must not match"`

	Title     []string `help:"Terms scoped to book titles"`
	Author    []string `help:"Terms scoped to authors and editors"`
	Publisher []string `help:"Terms scoped to publishers"`
	Subject   []string `help:"Terms scoped to subject categories"`
	ISBN      []string `help:"Terms scoped to ISBN identifiers"`
	LCCN      []string `help:"Terms scoped to Library of Congress Control Numbers"`
	OCLC      []string `help:"Terms scoped to OCLC numbers"`

	Lang         string `help:"Restrict results to a two-letter language code"`
	Filter       string `help:"Availability filter: partial, full, free-ebooks, paid-ebooks, ebooks"`
	PrintType    string `help:"Print type: all, books, magazines"`
	Order        string `help:"Sort order: relevance, newest"`
	Downloadable bool   `help:"Only volumes available as epub downloads"`

	Max         int    `help:"Maximum number of results to list" default:"20"`
	Format      string `help:"Output format" enum:"table,json,yaml" default:"table"`
	Interactive bool   `short:"i" help:"Pick a volume interactively from the results"`
}

func (s *SearchCmd) buildQuery() *googlebooks.Query {
	query := googlebooks.NewQuery()
	for _, term := range s.Terms {
		query.Include(term, s.Exact)
	}
	for _, term := range s.Exclude {
		query.Exclude(term, false)
	}

	scoped := []struct {
		set   *googlebooks.TermSet
		terms []string
	}{
		{query.Title(), s.Title},
		{query.Author(), s.Author},
		{query.Publisher(), s.Publisher},
		{query.Subject(), s.Subject},
		{query.ISBN(), s.ISBN},
		{query.LCCN(), s.LCCN},
		{query.OCLC(), s.OCLC},
	}
	for _, scope := range scoped {
		for _, term := range scope.terms {
			scope.set.Include(term, false)
		}
	}

	return query
}

func (s *SearchCmd) searchOptions() []googlebooks.SearchOption {
	var opts []googlebooks.SearchOption
	if s.Lang != "" {
		opts = append(opts, googlebooks.WithLanguage(s.Lang))
	}
	if s.Filter != "" {
		opts = append(opts, googlebooks.WithFilter(googlebooks.Filter(s.Filter)))
	}
	if s.PrintType != "" {
		opts = append(opts, googlebooks.WithPrintType(googlebooks.PrintType(s.PrintType)))
	}
	if s.Order != "" {
		opts = append(opts, googlebooks.WithOrder(googlebooks.OrderBy(s.Order)))
	}
	if s.Downloadable {
		opts = append(opts, googlebooks.WithDownloadableOnly())
	}
	return opts
}

func (s *SearchCmd) Run() error {
	query := s.buildQuery()
	if query.String() == "" {
		return fmt.Errorf("no search terms given")
	}

	client := newClient()
	search, err := client.Search(query, s.searchOptions()...)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var volumes []*googlebooks.Volume

	it := search.Iterate()
	for len(volumes) < s.Max && it.Next(ctx) {
		volumes = append(volumes, it.Volume())
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if s.Interactive {
		result, err := tui.SelectVolume(query.String(), volumes)
		if err != nil {
			return err
		}
		if result.Action != tui.ActionSelected {
			return nil
		}
		return writeVolumes(os.Stdout, []*googlebooks.Volume{result.Selection}, s.Format)
	}

	return writeVolumes(os.Stdout, volumes, s.Format)
}

func newClient() *googlebooks.Client {
	return googlebooks.NewClient(
		googlebooks.WithAPIKey(config.APIKey),
		googlebooks.WithPageSize(config.PageSize),
	)
}

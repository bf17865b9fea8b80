package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/libris/internal/googlebooks"
)

// volumeRow is the flattened output shape for json/yaml formats.
type volumeRow struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Subtitle  string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Authors   []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Publisher string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Published string   `json:"published,omitempty" yaml:"published,omitempty"`
	ISBN13    string   `json:"isbn13,omitempty" yaml:"isbn13,omitempty"`
	Pages     int      `json:"pages,omitempty" yaml:"pages,omitempty"`
	Language  string   `json:"language,omitempty" yaml:"language,omitempty"`
	Link      string   `json:"link,omitempty" yaml:"link,omitempty"`
}

func toRows(volumes []*googlebooks.Volume) []volumeRow {
	rows := make([]volumeRow, len(volumes))
	for i, v := range volumes {
		rows[i] = volumeRow{
			ID:        v.ID,
			Title:     v.Title,
			Subtitle:  v.Subtitle,
			Authors:   v.Authors,
			Publisher: v.Publisher,
			Published: v.PublishedDate,
			ISBN13:    v.ISBN13,
			Pages:     v.PageCount,
			Language:  v.Language,
			Link:      v.CanonicalLink,
		}
	}
	return rows
}

func writeVolumes(w io.Writer, volumes []*googlebooks.Volume, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toRows(volumes))
	case "yaml":
		return yaml.NewEncoder(w).Encode(toRows(volumes))
	default:
		return writeTable(w, volumes)
	}
}

func writeTable(w io.Writer, volumes []*googlebooks.Volume) error {
	if len(volumes) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHORS\tYEAR\tPAGES")
	for _, v := range volumes {
		year := ""
		if y := v.PublishedYear(); y > 0 {
			year = fmt.Sprintf("%d", y)
		}
		pages := ""
		if v.PageCount > 0 {
			pages = fmt.Sprintf("%d", v.PageCount)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.Title, v.AuthorLine(), year, pages)
	}
	return tw.Flush()
}

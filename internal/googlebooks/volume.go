package googlebooks

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	volumeKind     = "books#volume"
	volumeIDLength = 12
)

// volumeResource mirrors the raw Google Books volume payload. It is
// decoded into a flat Volume once at the fetch boundary so the rest of
// the code never walks the nested structure.
type volumeResource struct {
	Kind       string `json:"kind"`
	ID         string `json:"id"`
	SelfLink   string `json:"selfLink"`
	VolumeInfo struct {
		Title               string   `json:"title"`
		Subtitle            string   `json:"subtitle"`
		Authors             []string `json:"authors"`
		Publisher           string   `json:"publisher"`
		PublishedDate       string   `json:"publishedDate"`
		Description         string   `json:"description"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
		PageCount     int      `json:"pageCount"`
		Categories    []string `json:"categories"`
		AverageRating float64  `json:"averageRating"`
		RatingsCount  int      `json:"ratingsCount"`
		Language      string   `json:"language"`
		Dimensions    struct {
			Height    string `json:"height"`
			Width     string `json:"width"`
			Thickness string `json:"thickness"`
		} `json:"dimensions"`
		ImageLinks struct {
			SmallThumbnail string `json:"smallThumbnail"`
			Thumbnail      string `json:"thumbnail"`
		} `json:"imageLinks"`
		CanonicalVolumeLink string `json:"canonicalVolumeLink"`
	} `json:"volumeInfo"`
	AccessInfo struct {
		Epub struct {
			IsAvailable bool `json:"isAvailable"`
		} `json:"epub"`
		PDF struct {
			IsAvailable bool `json:"isAvailable"`
		} `json:"pdf"`
	} `json:"accessInfo"`
}

// Volume is a single bibliographic record, flattened from the provider's
// nested payload. Dimension fields are in centimeters, zero when the
// provider omits them.
type Volume struct {
	ID            string
	Title         string
	Subtitle      string
	Authors       []string
	Publisher     string
	PublishedDate string
	Description   string
	ISBN10        string
	ISBN13        string
	PageCount     int
	Categories    []string
	AverageRating float64
	RatingsCount  int
	Language      string
	HeightCM      float64
	WidthCM       float64
	ThicknessCM   float64
	Thumbnail     string
	CanonicalLink string
	EpubAvailable bool
	PDFAvailable  bool
}

func decodeVolume(res *volumeResource) (*Volume, error) {
	if res.Kind != volumeKind {
		return nil, fmt.Errorf("%w: kind %q is not %q", ErrInvalidData, res.Kind, volumeKind)
	}

	info := res.VolumeInfo
	volume := &Volume{
		ID:            res.ID,
		Title:         info.Title,
		Subtitle:      info.Subtitle,
		Authors:       info.Authors,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		Description:   info.Description,
		PageCount:     info.PageCount,
		Categories:    info.Categories,
		AverageRating: info.AverageRating,
		RatingsCount:  info.RatingsCount,
		Language:      info.Language,
		HeightCM:      parseDimension(info.Dimensions.Height),
		WidthCM:       parseDimension(info.Dimensions.Width),
		ThicknessCM:   parseDimension(info.Dimensions.Thickness),
		Thumbnail:     upgradeThumbnail(info.ImageLinks.Thumbnail, info.ImageLinks.SmallThumbnail),
		CanonicalLink: info.CanonicalVolumeLink,
		EpubAvailable: res.AccessInfo.Epub.IsAvailable,
		PDFAvailable:  res.AccessInfo.PDF.IsAvailable,
	}

	for _, id := range info.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_10":
			volume.ISBN10 = id.Identifier
		case "ISBN_13":
			volume.ISBN13 = id.Identifier
		}
	}

	return volume, nil
}

// parseDimension converts provider dimension strings like "23.00 cm" to
// centimeters. Returns 0 for empty or unparseable values.
func parseDimension(value string) float64 {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "cm"))
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// upgradeThumbnail prefers the larger thumbnail and removes the zoom
// parameter for higher quality.
func upgradeThumbnail(thumbnail, smallThumbnail string) string {
	coverURL := thumbnail
	if coverURL == "" {
		coverURL = smallThumbnail
	}
	return strings.Replace(coverURL, "zoom=1", "zoom=0", 1)
}

// AuthorLine returns the authors joined for display.
func (v *Volume) AuthorLine() string {
	return strings.Join(v.Authors, ", ")
}

// PublishedYear extracts the year from the published date, or 0 when it
// cannot be determined.
func (v *Volume) PublishedYear() int {
	if len(v.PublishedDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(v.PublishedDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// Volume fetches a single volume by its provider ID. Returns ErrNotFound
// when no volume has that ID.
func (c *Client) Volume(ctx context.Context, id string) (*Volume, error) {
	if err := validateVolumeID(id); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/volumes/%s", c.baseURL, url.PathEscape(id))
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	var res volumeResource
	if err := c.getJSON(ctx, endpoint, &res); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
			return nil, fmt.Errorf("%w: no volume with ID %q", ErrNotFound, id)
		}
		return nil, err
	}

	return decodeVolume(&res)
}

func validateVolumeID(id string) error {
	if len(id) != volumeIDLength {
		return fmt.Errorf("%w: volume ID must be %d characters, got %q", ErrInvalidArgument, volumeIDLength, id)
	}
	for _, ch := range id {
		if ch <= ' ' || ch > '~' {
			return fmt.Errorf("%w: volume ID %q contains non-printable characters", ErrInvalidArgument, id)
		}
	}
	return nil
}

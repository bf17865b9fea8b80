package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/libris/internal/ratelimit"
)

const testVolumeJSON = `{
	"kind": "books#volume",
	"id": "zyTCAlFPjgYC",
	"volumeInfo": {
		"title": "Flowers for Algernon",
		"subtitle": "A Novel",
		"authors": ["Daniel Keyes"],
		"publisher": "Harcourt",
		"publishedDate": "2004-05-01",
		"description": "A mentally disabled man undergoes an experiment.",
		"industryIdentifiers": [
			{"type": "ISBN_10", "identifier": "0156030306"},
			{"type": "ISBN_13", "identifier": "9780156030304"}
		],
		"pageCount": 311,
		"categories": ["Fiction"],
		"averageRating": 4.5,
		"ratingsCount": 128,
		"language": "en",
		"dimensions": {"height": "21.00 cm", "width": "13.50 cm", "thickness": "2.20 cm"},
		"imageLinks": {
			"smallThumbnail": "http://books.example/small?zoom=5",
			"thumbnail": "http://books.example/thumb?zoom=1"
		},
		"canonicalVolumeLink": "https://books.example/volume/zyTCAlFPjgYC"
	},
	"accessInfo": {
		"epub": {"isAvailable": true},
		"pdf": {"isAvailable": false}
	}
}`

func newVolumeTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(
		WithBaseURL(server.URL),
		WithRateLimiter(ratelimit.New("test", 1000)),
		WithRetryAttempts(1),
	)
}

func TestVolumeByID(t *testing.T) {
	var requestedPath string
	client := newVolumeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testVolumeJSON))
	})

	volume, err := client.Volume(context.Background(), "zyTCAlFPjgYC")
	require.NoError(t, err)

	assert.Equal(t, "/volumes/zyTCAlFPjgYC", requestedPath)
	assert.Equal(t, "zyTCAlFPjgYC", volume.ID)
	assert.Equal(t, "Flowers for Algernon", volume.Title)
	assert.Equal(t, "A Novel", volume.Subtitle)
	assert.Equal(t, []string{"Daniel Keyes"}, volume.Authors)
	assert.Equal(t, "0156030306", volume.ISBN10)
	assert.Equal(t, "9780156030304", volume.ISBN13)
	assert.Equal(t, 311, volume.PageCount)
	assert.Equal(t, "en", volume.Language)
	assert.InDelta(t, 21.0, volume.HeightCM, 0.001)
	assert.InDelta(t, 13.5, volume.WidthCM, 0.001)
	assert.InDelta(t, 2.2, volume.ThicknessCM, 0.001)
	assert.True(t, volume.EpubAvailable)
	assert.False(t, volume.PDFAvailable)
}

func TestVolumeByIDNotFound(t *testing.T) {
	client := newVolumeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.Volume(context.Background(), "zzzzzzzzzzzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVolumeByIDValidation(t *testing.T) {
	called := false
	client := newVolumeTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	ctx := context.Background()

	_, err := client.Volume(ctx, "tooshort")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = client.Volume(ctx, "zyTCAlFPjgYCtoolong")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = client.Volume(ctx, "zyTCAlFPjg\tC")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.False(t, called, "invalid IDs must be rejected before any network access")
}

func TestDecodeVolumeRejectsWrongKind(t *testing.T) {
	res := &volumeResource{Kind: "books#bookshelf", ID: "zyTCAlFPjgYC"}

	_, err := decodeVolume(res)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestDecodeVolumeUpgradesThumbnail(t *testing.T) {
	res := &volumeResource{Kind: volumeKind, ID: "zyTCAlFPjgYC"}
	res.VolumeInfo.ImageLinks.Thumbnail = "http://books.example/thumb?zoom=1&edge=curl"

	volume, err := decodeVolume(res)
	require.NoError(t, err)
	assert.Equal(t, "http://books.example/thumb?zoom=0&edge=curl", volume.Thumbnail)
}

func TestDecodeVolumeFallsBackToSmallThumbnail(t *testing.T) {
	res := &volumeResource{Kind: volumeKind, ID: "zyTCAlFPjgYC"}
	res.VolumeInfo.ImageLinks.SmallThumbnail = "http://books.example/small"

	volume, err := decodeVolume(res)
	require.NoError(t, err)
	assert.Equal(t, "http://books.example/small", volume.Thumbnail)
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"23.00 cm", 23.0},
		{"2.50 cm", 2.5},
		{"15cm", 15.0},
		{"", 0},
		{"unknown", 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, parseDimension(tt.input), 0.001, "input %q", tt.input)
	}
}

func TestPublishedYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2004-05-01", 2004},
		{"1966", 1966},
		{"", 0},
		{"19", 0},
		{"abcd-01-01", 0},
	}

	for _, tt := range tests {
		volume := &Volume{PublishedDate: tt.date}
		assert.Equal(t, tt.want, volume.PublishedYear(), "date %q", tt.date)
	}
}

func TestAuthorLine(t *testing.T) {
	volume := &Volume{Authors: []string{"Daniel Keyes", "Someone Else"}}
	assert.Equal(t, "Daniel Keyes, Someone Else", volume.AuthorLine())

	assert.Equal(t, "", (&Volume{}).AuthorLine())
}

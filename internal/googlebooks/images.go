package googlebooks

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const defaultCoverMaxWidth = 1000

// DownloadCover downloads a volume's cover image, resizes it to at most
// maxWidth pixels wide and saves it as JPEG at savePath. Returns
// ErrNotFound when the volume has no thumbnail.
func (c *Client) DownloadCover(ctx context.Context, volume *Volume, savePath string, maxWidth int) error {
	if volume.Thumbnail == "" {
		return fmt.Errorf("%w: volume %q has no cover image", ErrNotFound, volume.ID)
	}
	if maxWidth <= 0 {
		maxWidth = defaultCoverMaxWidth
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, volume.Thumbnail, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decoding cover image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return err
	}

	return imaging.Save(img, savePath, imaging.JPEGQuality(85))
}

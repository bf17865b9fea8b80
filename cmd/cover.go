package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// CoverCmd represents the cover download command
type CoverCmd struct {
	ID     string `arg:"" help:"Volume ID to download the cover for"`
	Output string `short:"o" help:"Directory to save the cover into" default:"."`
	Width  int    `help:"Maximum cover width in pixels" default:"1000"`
}

func (c *CoverCmd) Run() error {
	ctx := context.Background()
	client := newClient()

	volume, err := fetchVolumeCached(ctx, client, c.ID)
	if err != nil {
		return err
	}

	savePath := filepath.Join(c.Output, fmt.Sprintf("%s - cover.jpg", volume.ID))
	if err := client.DownloadCover(ctx, volume, savePath, c.Width); err != nil {
		return fmt.Errorf("downloading cover: %w", err)
	}

	slog.Info("Cover downloaded", "volume", volume.Title, "path", savePath)
	return nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lepinkainen/libris/internal/cache"
	"github.com/lepinkainen/libris/internal/googlebooks"
)

// VolumeCmd represents the volume lookup command
type VolumeCmd struct {
	ID     string `arg:"" help:"Volume ID (12 characters, e.g. zyTCAlFPjgYC)"`
	Format string `help:"Output format" enum:"table,json,yaml" default:"table"`
}

// cachedVolume wraps a volume with a not-found marker so negative lookups
// can be cached too.
type cachedVolume struct {
	Volume   *googlebooks.Volume `json:"volume"`
	NotFound bool                `json:"not_found"`
}

func (v *VolumeCmd) Run() error {
	volume, err := fetchVolumeCached(context.Background(), newClient(), v.ID)
	if err != nil {
		return err
	}
	return writeVolumes(os.Stdout, []*googlebooks.Volume{volume}, v.Format)
}

func fetchVolumeCached(ctx context.Context, client *googlebooks.Client, id string) (*googlebooks.Volume, error) {
	cached, _, err := cache.GetOrFetchTTL(id,
		func() (*cachedVolume, error) {
			volume, fetchErr := client.Volume(ctx, id)
			if errors.Is(fetchErr, googlebooks.ErrNotFound) {
				return &cachedVolume{NotFound: true}, nil
			}
			if fetchErr != nil {
				return nil, fetchErr
			}
			return &cachedVolume{Volume: volume}, nil
		},
		cache.NegativeTTLFor(func(v *cachedVolume) bool {
			return v.NotFound
		}))
	if err != nil {
		return nil, err
	}

	if cached.NotFound {
		return nil, fmt.Errorf("%w: %s", googlebooks.ErrNotFound, id)
	}
	return cached.Volume, nil
}

package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/open-edge-platform/minfs-builder/internal/utils/logger"
	"github.com/open-edge-platform/minfs-builder/internal/utils/network"
)

// FetchFunc is the signature of Fetch, held by components that download
// archives so tests can substitute a stub.
type FetchFunc func(url string, destDir string) (string, error)

// Fetch downloads url into destDir, named after the last URL path segment,
// showing a progress bar. It returns the local path of the downloaded file.
func Fetch(url string, destDir string) (string, error) {
	log := logger.Logger()
	name := path.Base(url)

	client := network.NewSecureHTTPClient()
	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: bad status: %s", url, resp.Status)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", destDir, err)
	}

	destPath := filepath.Join(destDir, name)
	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", destPath, err)
	}
	defer out.Close()

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionFullWidth(),
		progressbar.OptionSetDescription(fmt.Sprintf("downloading %s", name)),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)

	if _, err := io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		return "", fmt.Errorf("writing %s: %w", destPath, err)
	}
	bar.Finish()

	log.Debugf("fetched %s -> %s", url, destPath)
	return destPath, nil
}

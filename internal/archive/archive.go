package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/open-edge-platform/minfs-builder/internal/utils/logger"
)

// Scan finds every package archive staged in dir and verifies each one
// decodes end to end. It returns the archive paths sorted by name; any
// archive that fails to decode makes the whole scan fail.
func Scan(dir string) ([]string, error) {
	log := logger.Logger()

	pattern := filepath.Join(dir, "*.pkg.tar*")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(paths)

	for _, p := range paths {
		n, err := verify(p)
		if err != nil {
			return nil, fmt.Errorf("archive %s failed verification: %w", p, err)
		}
		log.Debugf("verified %s (%d members)", filepath.Base(p), n)
	}
	return paths, nil
}

// verify decodes the whole archive and returns its member count.
func verify(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r, err := decompressor(path, f)
	if err != nil {
		return 0, err
	}

	tr := tar.NewReader(r)
	count := 0
	for {
		_, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("reading tar member: %w", err)
		}
		count++
		if _, err := io.Copy(io.Discard, tr); err != nil {
			return count, fmt.Errorf("reading tar member body: %w", err)
		}
	}
	return count, nil
}

func decompressor(path string, f io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return zr.IOReadCloser(), nil
	case strings.HasSuffix(path, ".xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening xz stream: %w", err)
		}
		return xr, nil
	case strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return gr, nil
	default:
		// plain .pkg.tar
		return f, nil
	}
}

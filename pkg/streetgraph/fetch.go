package streetgraph

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var ErrNotFound = errors.New("street network not found on server")

var httpClient = &http.Client{Timeout: 5 * time.Minute}

// Fetch returns a local path for src. HTTP and HTTPS URLs are downloaded
// into cacheDir the first time and reused afterwards; anything else is
// returned unchanged as a file path.
func Fetch(src, cacheDir string, logger *log.Logger) (string, error) {
	if !isRemote(src) {
		return src, nil
	}
	if logger == nil {
		logger = log.Default()
	}
	return netCache{dir: cacheDir, logger: logger}.get(src)
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// netCache keeps one file per source URL in dir. A file only appears under
// its final name once the whole body has been written.
type netCache struct {
	dir    string
	logger *log.Logger
}

func (c netCache) get(src string) (string, error) {
	entry := filepath.Join(c.dir, cacheFileName(src))
	if info, err := os.Stat(entry); err == nil {
		c.logger.Info("using cached street network", "path", entry, "bytes", info.Size())
		return entry, nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	start := time.Now()
	c.logger.Info("downloading street network", "url", src)
	body, err := open(src)
	if err != nil {
		return "", err
	}
	n, err := c.store(entry, body)
	if cerr := body.Close(); cerr != nil {
		c.logger.Warn("closing response body", "err", cerr)
	}
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", src, err)
	}
	c.logger.Info("street network cached",
		"path", entry,
		"mb", float64(n)/(1<<20),
		"took", time.Since(start).Round(time.Millisecond))
	return entry, nil
}

// open issues the request and hands back the body of a 200 response.
func open(src string) (io.ReadCloser, error) {
	resp, err := httpClient.Get(src)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src, err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		err = ErrNotFound
	default:
		err = fmt.Errorf("fetching %s: bad status: %s", src, resp.Status)
	}
	_ = resp.Body.Close()
	return nil, err
}

// store copies r into a scratch file beside entry and renames it into place.
func (c netCache) store(entry string, r io.Reader) (int64, error) {
	scratch, err := os.CreateTemp(c.dir, ".partial-*")
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(scratch, r)
	if cerr := scratch.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(scratch.Name(), entry)
	}
	if err != nil {
		if rerr := os.Remove(scratch.Name()); rerr != nil && !os.IsNotExist(rerr) {
			c.logger.Warn("removing partial download", "path", scratch.Name(), "err", rerr)
		}
		return n, err
	}
	return n, nil
}

// cacheFileName keeps the URL's base name, prefixed with a hash of the
// whole URL so different sources never collide.
func cacheFileName(src string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(src))
	base := "network.geojson"
	if u, err := url.Parse(src); err == nil {
		if b := path.Base(u.Path); b != "." && b != "/" {
			base = b
		}
	}
	return fmt.Sprintf("%08x_%s", h.Sum32(), base)
}

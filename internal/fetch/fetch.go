// Package fetch downloads the UCD source files a build reads.
package fetch

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/raphaelgruber/kangxi-radicals/internal/metrics"
)

// File names within the UCD directory.
const (
	EquivalenceName = "EquivalentUnifiedIdeograph.txt"
	UnihanArchive   = "Unihan.zip"
	StrokesName     = "Unihan_IRGSources.txt"
)

// ErrMissingMember indicates the Unihan archive lacks the strokes file.
var ErrMissingMember = errors.New("archive member not found")

// Progress reports bytes received for one download. total is -1 when unknown.
type Progress func(name string, received, total int64)

// Request names the destination files. Relative paths are resolved against Dir.
type Request struct {
	Dir             string
	EquivalenceFile string
	StrokesFile     string
	Force           bool
}

// File is the outcome for one destination file.
type File struct {
	Name    string
	Path    string
	Bytes   int64
	Skipped bool
}

// Fetcher downloads from a UCD base URL such as
// https://www.unicode.org/Public/UCD/latest/.
type Fetcher struct {
	baseURL  *url.URL
	client   *http.Client
	logger   *slog.Logger
	metrics  *metrics.Collector
	progress Progress
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithProgress installs a progress callback.
func WithProgress(p Progress) Option {
	return func(f *Fetcher) { f.progress = p }
}

// WithMetrics records download timings and byte counts into c.
func WithMetrics(c *metrics.Collector) Option {
	return func(f *Fetcher) { f.metrics = c }
}

// New creates a fetcher for baseURL.
func New(baseURL string, logger *slog.Logger, opts ...Option) (*Fetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q: scheme must be http or https", baseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}
	f := &Fetcher{
		baseURL: u,
		client:  &http.Client{Timeout: 10 * time.Minute},
		logger:  logger,
		metrics: metrics.NewCollector(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch downloads both source files. Existing files are kept unless Force is set.
func (f *Fetcher) Fetch(ctx context.Context, req Request) ([]File, error) {
	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", req.Dir, err)
	}

	eqPath := resolve(req.Dir, req.EquivalenceFile, EquivalenceName)
	strokesPath := resolve(req.Dir, req.StrokesFile, StrokesName)

	eq, err := f.fetchOne(ctx, eqPath, req.Force, func(ctx context.Context) (int64, error) {
		return f.downloadTo(ctx, EquivalenceName, eqPath)
	})
	if err != nil {
		return nil, err
	}

	strokes, err := f.fetchOne(ctx, strokesPath, req.Force, func(ctx context.Context) (int64, error) {
		return f.downloadMember(ctx, UnihanArchive, StrokesName, strokesPath)
	})
	if err != nil {
		return nil, err
	}

	return []File{eq, strokes}, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, path string, force bool, get func(context.Context) (int64, error)) (File, error) {
	file := File{Name: filepath.Base(path), Path: path}
	if !force {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			f.logger.Info("source present, skipping download", "path", path)
			file.Bytes = info.Size()
			file.Skipped = true
			return file, nil
		}
	}

	err := f.metrics.Time(metrics.StageDownload, func() error {
		n, err := get(ctx)
		file.Bytes = n
		return err
	})
	if err != nil {
		return File{}, err
	}
	f.logger.Info("source downloaded", "path", path, "bytes", file.Bytes)
	return file, nil
}

// downloadTo fetches name from the UCD directory into dest atomically.
func (f *Fetcher) downloadTo(ctx context.Context, name, dest string) (int64, error) {
	tmp, n, err := f.download(ctx, name, filepath.Dir(dest))
	if err != nil {
		return 0, err
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("rename %s: %w", dest, err)
	}
	return n, nil
}

// downloadMember fetches the archive and extracts member into dest.
func (f *Fetcher) downloadMember(ctx context.Context, archive, member, dest string) (int64, error) {
	tmp, _, err := f.download(ctx, archive, filepath.Dir(dest))
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp)

	return extract(tmp, member, dest)
}

// download streams the named UCD file into a temp file in dir and returns its path.
func (f *Fetcher) download(ctx context.Context, name, dir string) (string, int64, error) {
	src := f.baseURL.JoinPath("ucd", name).String()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", 0, fmt.Errorf("request %s: %w", src, err)
	}

	f.logger.Debug("downloading", "url", src)
	resp, err := f.client.Do(httpReq)
	if err != nil {
		return "", 0, fmt.Errorf("get %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("get %s: unexpected status %s", src, resp.Status)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-fetch-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	body := &countingReader{r: resp.Body, name: name, total: resp.ContentLength, progress: f.progress}
	n, err := io.Copy(tmp, body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return "", 0, fmt.Errorf("download %s: %w", src, err)
	}

	f.metrics.Add(metrics.CounterBytesDownloaded, n)
	return tmpName, n, nil
}

// extract copies member out of the zip at archivePath into dest atomically.
func extract(archivePath, member, dest string) (int64, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	var zf *zip.File
	for _, candidate := range zr.File {
		if filepath.Base(candidate.Name) == member {
			zf = candidate
			break
		}
	}
	if zf == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingMember, member)
	}

	rc, err := zf.Open()
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", member, err)
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-extract-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, rc)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, dest)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("extract %s: %w", member, err)
	}
	return n, nil
}

func resolve(dir, path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

type countingReader struct {
	r        io.Reader
	name     string
	received int64
	total    int64
	progress Progress
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.received += int64(n)
	if c.progress != nil && n > 0 {
		c.progress(c.name, c.received, c.total)
	}
	return n, err
}

// Package source implements C1 (spec.md §4.1): translating a logical
// schema reference into bytes. Filesystem reads are sandboxed
// symlink-aware; network reads are optional and, when configured, rate
// limited, retried, cached, and per-host authenticated.
//
// Grounded on cue/load/fs.go's filesystem-abstraction shape and
// cue/mod/modcache's read-then-write-on-miss caching shape, simplified
// to an in-memory cache since spec.md §5 only calls for in-memory
// caches.
package source

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	lmlerrors "github.com/linkml-go/linkml/errors"
)

// RefKind classifies a logical schema reference per spec.md §4.1's
// four reference forms.
type RefKind int

const (
	RefUnknown RefKind = iota
	RefAbsolutePath
	RefRelativePath
	RefURL
	RefPrefixedID
)

func (k RefKind) String() string {
	switch k {
	case RefAbsolutePath:
		return "absolute-path"
	case RefRelativePath:
		return "relative-path"
	case RefURL:
		return "url"
	case RefPrefixedID:
		return "prefixed-id"
	default:
		return "unknown"
	}
}

// Classify implements spec.md §4.1's reference-form detection. A
// reference is a URL if it carries a "scheme://" prefix; otherwise a
// leading "prefix:" that is not itself a URL scheme names a prefixed
// logical id (spec.md §6.2's `prefix:tail/path/schema` grammar);
// otherwise it is an absolute or relative filesystem path.
func Classify(ref string) RefKind {
	if strings.Contains(ref, "://") {
		return RefURL
	}
	if i := strings.IndexByte(ref, ':'); i > 0 {
		if !strings.ContainsAny(ref[:i], `/\`) {
			return RefPrefixedID
		}
	}
	if filepath.IsAbs(ref) {
		return RefAbsolutePath
	}
	return RefRelativePath
}

// Config configures a Reader. All fields are optional except
// SearchPaths, which is consulted for relative and local-prefixed
// references.
type Config struct {
	// SearchPaths are directories consulted, in order, for relative
	// references and the local half of prefixed ids (spec.md §6.4
	// "search_paths"). An entry containing glob metacharacters (e.g.
	// "vendor/**/schema") is expanded via doublestar; the earliest
	// directory producing a match wins.
	SearchPaths []string

	// PrefixMap expands a prefixed id's prefix to a local base
	// directory, consulted before PrefixBaseURLs (spec.md §4.1 form 4,
	// "local resolution is attempted first, remote second").
	PrefixMap map[string]string

	// PrefixBaseURLs expands a prefixed id's prefix to a remote base
	// URL, consulted when PrefixMap misses or is unconfigured for that
	// prefix.
	PrefixBaseURLs map[string]string

	// SandboxRoot, if set, confines every filesystem read to this
	// subtree (spec.md §4.1 "sandboxed... symlink-aware", §6.4
	// "sandbox_root").
	SandboxRoot string

	// HTTPClient enables network reads when non-nil (spec.md §6.4
	// "http_client: optional... when absent, remote imports fail with
	// UnsupportedScheme").
	HTTPClient *http.Client

	// RateLimiter, if set, is waited on before every HTTP request
	// (spec.md §4.1 "supports rate limiting").
	RateLimiter *rate.Limiter

	// AuthHeaders maps a request host to the Authorization header
	// value sent to it (spec.md §4.1 "per-host authentication").
	AuthHeaders map[string]string

	// MaxRetries bounds HTTP retry attempts on transport failure or a
	// 5xx response; defaults to 3.
	MaxRetries int

	// RetryBackoff is the base delay between retries, multiplied by
	// the attempt number; defaults to 200ms.
	RetryBackoff time.Duration

	Logger *logrus.Logger
}

// Reader is C1's reference reader. The zero value is not usable; use
// NewReader.
type Reader struct {
	cfg Config
	log *logrus.Logger

	cacheMu sync.RWMutex
	cache   map[string][]byte
}

// NewReader builds a Reader from cfg.
func NewReader(cfg Config) *Reader {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reader{cfg: cfg, log: log, cache: make(map[string][]byte)}
}

// Read resolves ref to bytes per its classified form (spec.md §4.1's
// `read(ref) -> bytes | NotFound | IoError | NetworkError` contract,
// the three failure kinds modeled here as *errors.Error of Kind
// NotFound/IoError, since network failures are a flavour of IoError in
// this core's error taxonomy, §7).
func (r *Reader) Read(ctx context.Context, ref string) ([]byte, error) {
	switch Classify(ref) {
	case RefAbsolutePath:
		return r.readFile(ref)
	case RefRelativePath:
		return r.readSearchPaths(ref)
	case RefURL:
		return r.fetch(ctx, ref)
	case RefPrefixedID:
		return r.readPrefixed(ctx, ref)
	default:
		return nil, lmlerrors.New(lmlerrors.NotFound, ref, "unrecognised reference form")
	}
}

// readFile reads a single filesystem path, enforcing the sandbox if
// configured.
func (r *Reader) readFile(path string) ([]byte, error) {
	resolved, err := r.sandboxResolve(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lmlerrors.Wrap(lmlerrors.NotFound, path, err)
		}
		return nil, lmlerrors.Wrap(lmlerrors.IoError, path, err)
	}
	return b, nil
}

// sandboxResolve enforces spec.md §4.1's "reads must be rejected if
// the resolved path escapes a configured root (symlink-aware)". It
// resolves symlinks on whatever prefix of path actually exists, so a
// not-yet-created file under the root is still checked correctly.
func (r *Reader) sandboxResolve(path string) (string, error) {
	if r.cfg.SandboxRoot == "" {
		return path, nil
	}
	root, err := filepath.EvalSymlinks(r.cfg.SandboxRoot)
	if err != nil {
		return "", lmlerrors.Wrap(lmlerrors.IoError, path, err)
	}
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		resolved = filepath.Clean(abs)
	}
	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", lmlerrors.New(lmlerrors.IoError, path, "path escapes sandbox root")
	}
	return resolved, nil
}

// readSearchPaths implements spec.md §4.1 form 2: "resolved against a
// configured search-path list, earliest match wins", with glob entries
// (ADDENDUM C) expanded via doublestar.
func (r *Reader) readSearchPaths(ref string) ([]byte, error) {
	for _, sp := range r.cfg.SearchPaths {
		if strings.ContainsAny(sp, "*?[") {
			matches, err := doublestar.FilepathGlob(sp)
			if err != nil {
				continue
			}
			for _, dir := range matches {
				if b, err := r.readFile(filepath.Join(dir, ref)); err == nil {
					return b, nil
				}
			}
			continue
		}
		if b, err := r.readFile(filepath.Join(sp, ref)); err == nil {
			return b, nil
		}
	}
	return nil, lmlerrors.New(lmlerrors.NotFound, ref, "not found in any search path")
}

// readPrefixed implements spec.md §4.1 form 4: local resolution first,
// remote second.
func (r *Reader) readPrefixed(ctx context.Context, ref string) ([]byte, error) {
	i := strings.IndexByte(ref, ':')
	if i < 0 {
		return nil, lmlerrors.New(lmlerrors.NotFound, ref, "malformed prefixed reference")
	}
	prefix, tail := ref[:i], ref[i+1:]

	if base, ok := r.cfg.PrefixMap[prefix]; ok {
		if b, err := r.readFile(filepath.Join(base, tail)); err == nil {
			return b, nil
		}
	}
	if b, err := r.readSearchPaths(tail); err == nil {
		return b, nil
	}
	if base, ok := r.cfg.PrefixBaseURLs[prefix]; ok {
		return r.fetch(ctx, strings.TrimRight(base, "/")+"/"+tail)
	}
	return nil, lmlerrors.Newf(lmlerrors.NotFound, ref, "unresolved prefix %q", prefix)
}

// fetch implements the network half of C1: rate limiting, retry with
// backoff, response caching, and per-host authentication (spec.md
// §4.1, §6.4).
func (r *Reader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if r.cfg.HTTPClient == nil {
		return nil, lmlerrors.New(lmlerrors.IoError, rawURL,
			"unsupported scheme: no http client configured (UnsupportedScheme)")
	}

	r.cacheMu.RLock()
	cached, ok := r.cache[rawURL]
	r.cacheMu.RUnlock()
	if ok {
		r.log.WithField("url", rawURL).Debug("source: cache hit")
		return cached, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, lmlerrors.Wrap(lmlerrors.IoError, rawURL, err)
	}
	reqID := uuid.NewString()

	maxRetries := r.cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	backoff := r.cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if r.cfg.RateLimiter != nil {
			if err := r.cfg.RateLimiter.Wait(ctx); err != nil {
				return nil, lmlerrors.Wrap(lmlerrors.IoError, rawURL, err)
			}
		}

		body, status, err := r.doOnce(ctx, rawURL, u.Host, reqID)
		if err != nil {
			lastErr = err
			r.log.WithFields(logrus.Fields{
				"request_id": reqID, "url": rawURL, "attempt": attempt + 1,
			}).Warn("source: fetch attempt failed")
			time.Sleep(backoff * time.Duration(attempt+1))
			continue
		}
		if status == http.StatusNotFound {
			return nil, lmlerrors.New(lmlerrors.NotFound, rawURL, "remote resource not found").WithHTTPStatus(status)
		}
		if status >= 500 {
			lastErr = lmlerrors.Newf(lmlerrors.IoError, rawURL, "server error %d", status)
			r.log.WithFields(logrus.Fields{
				"request_id": reqID, "url": rawURL, "status": status, "attempt": attempt + 1,
			}).Warn("source: retrying after server error")
			time.Sleep(backoff * time.Duration(attempt+1))
			continue
		}
		if status >= 400 {
			return nil, lmlerrors.New(lmlerrors.IoError, rawURL, "client error").WithHTTPStatus(status)
		}

		r.cacheMu.Lock()
		r.cache[rawURL] = body
		r.cacheMu.Unlock()
		r.log.WithFields(logrus.Fields{"request_id": reqID, "url": rawURL}).Info("source: fetch complete")
		return body, nil
	}
	return nil, lmlerrors.Wrap(lmlerrors.IoError, rawURL, lastErr)
}

func (r *Reader) doOnce(ctx context.Context, rawURL, host, reqID string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("X-Request-Id", reqID)
	if auth, ok := r.cfg.AuthHeaders[host]; ok {
		req.Header.Set("Authorization", auth)
	}
	resp, err := r.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

package resolver

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vit0-9/link_redirector/models"
)

const (
	// MaxCodeLength is the longest short code that is ever looked up.
	MaxCodeLength = 11
	// DefaultFallbackURL is where every unresolved request ends up.
	DefaultFallbackURL = "https://www.google.com"
	// DefaultLookupTimeout bounds a single store call.
	DefaultLookupTimeout = 5 * time.Second

	reservedFavicon = "favicon.ico"
	emailParam      = "email"
)

// ErrUpstream marks any failure of the lookup store: timeouts, connectivity,
// malformed payloads. Callers turn it into a 500 without exposing details.
var ErrUpstream = errors.New("lookup store failure")

// Store is the read side of the short-link table.
// FindBySlug returns (nil, nil) when no row matches.
type Store interface {
	FindBySlug(ctx context.Context, slug string) (*models.RedirectRecord, error)
}

// Observer receives one call per resolution. Metrics hook in here.
type Observer interface {
	ObserveResolution(outcome string, lookup time.Duration)
}

type Option func(*Resolver)

func WithFallbackURL(fallback string) Option {
	return func(r *Resolver) {
		if fallback != "" {
			r.fallbackURL = fallback
		}
	}
}

func WithLookupTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		if timeout > 0 {
			r.lookupTimeout = timeout
		}
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(r *Resolver) {
		r.observer = observer
	}
}

// Resolver turns a short code into a redirect. It keeps no per-request state
// and is safe for concurrent use as long as the Store is.
type Resolver struct {
	store         Store
	fallbackURL   string
	lookupTimeout time.Duration
	logger        logrus.FieldLogger
	observer      Observer
}

func New(store Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:         store,
		fallbackURL:   DefaultFallbackURL,
		lookupTimeout: DefaultLookupTimeout,
		logger:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FallbackURL returns the destination used when nothing matches.
func (r *Resolver) FallbackURL() string {
	return r.fallbackURL
}

// Resolve runs the guards, performs at most one lookup and builds the
// redirect. The only error it returns wraps ErrUpstream.
func (r *Resolver) Resolve(ctx context.Context, path string, query url.Values) (*models.RedirectResult, error) {
	if isGuarded(path) {
		r.observe(models.ResultFallback.String(), 0)
		return r.fallback(), nil
	}

	record, took, err := r.lookup(ctx, path)
	if err != nil {
		r.observe("upstream_error", took)
		return nil, err
	}
	if record == nil || record.TargetURL == "" {
		r.observe(models.ResultFallback.String(), took)
		return r.fallback(), nil
	}

	location := AppendEmail(EnsureScheme(record.TargetURL), query.Get(emailParam))
	r.observe(models.ResultRedirect.String(), took)
	return &models.RedirectResult{
		Kind:       models.ResultRedirect,
		StatusCode: http.StatusFound,
		Location:   location,
	}, nil
}

func (r *Resolver) lookup(ctx context.Context, path string) (*models.RedirectRecord, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	start := time.Now()
	record, err := r.store.FindBySlug(ctx, path)
	took := time.Since(start)
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"code":    path,
			"elapsed": took.String(),
		}).Error("short link lookup failed")
		return nil, took, errors.Wrapf(ErrUpstream, "lookup %q: %v", path, err)
	}
	return record, took, nil
}

func (r *Resolver) fallback() *models.RedirectResult {
	return &models.RedirectResult{
		Kind:       models.ResultFallback,
		StatusCode: http.StatusFound,
		Location:   r.fallbackURL,
	}
}

func (r *Resolver) observe(outcome string, took time.Duration) {
	if r.observer != nil {
		r.observer.ObserveResolution(outcome, took)
	}
}

// isGuarded reports whether a code goes straight to the fallback.
func isGuarded(path string) bool {
	return path == "" || path == reservedFavicon || utf8.RuneCountInString(path) > MaxCodeLength
}

// EnsureScheme prefixes https:// unless the target already names http or https.
func EnsureScheme(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	return "https://" + target
}

// AppendEmail adds the email parameter verbatim. The value is not re-encoded.
func AppendEmail(target, email string) string {
	if email == "" {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + emailParam + "=" + email
}

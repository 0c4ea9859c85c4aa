package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/JobPortal/internal/interfaces/http/handlers"
	"github.com/turtacn/JobPortal/pkg/errors"
)

// APIPrefix is the common prefix of every API area.
const APIPrefix = "/api/v1"

// Dispatch labels recorded for requests that do not reach a group.
const (
	dispatchLabelRoot = "/"
	dispatchLabelNone = "none"
)

type routeCtxKey struct{}

// MatchedPrefix returns the prefix a request was dispatched under, or "" when
// the request did not go through a RouteTable.
func MatchedPrefix(ctx context.Context) string {
	p, _ := ctx.Value(routeCtxKey{}).(string)
	return p
}

// RouteEntry binds a path prefix to the handler group serving it.
type RouteEntry struct {
	Prefix string
	Group  http.Handler
}

// RouteTable forwards requests to the first registered group whose prefix
// covers the request path.  Prefixes match on whole path segments, so
// "/api/v1/job" covers "/api/v1/job/7" but not "/api/v1/jobx/7".  Entries are
// registered at startup; the table freezes on its first dispatch.
type RouteTable struct {
	mu      sync.RWMutex
	entries []RouteEntry
	frozen  bool
	metrics *prometheus.HTTPMetrics
}

// RouteTableOption configures a RouteTable.
type RouteTableOption func(*RouteTable)

// WithDispatchMetrics records one dispatch_total sample per request.
func WithDispatchMetrics(m *prometheus.HTTPMetrics) RouteTableOption {
	return func(t *RouteTable) { t.metrics = m }
}

// NewRouteTable creates an empty table.
func NewRouteTable(opts ...RouteTableOption) *RouteTable {
	t := &RouteTable{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// normalizePrefix trims trailing slashes and validates the result.
func normalizePrefix(prefix string) (string, error) {
	if !strings.HasPrefix(prefix, "/") {
		return "", errors.Newf(errors.ErrCodeRoutePrefixInvalid, "route prefix %q must start with /", prefix)
	}
	if strings.ContainsAny(prefix, " ?#") {
		return "", errors.Newf(errors.ErrCodeRoutePrefixInvalid, "route prefix %q contains a reserved character", prefix)
	}
	trimmed := strings.TrimRight(prefix, "/")
	if trimmed == "" {
		return "", errors.New(errors.ErrCodeRoutePrefixInvalid, "route prefix must not be the root path")
	}
	return trimmed, nil
}

// Register appends prefix → group.  Registration order is dispatch order.
func (t *RouteTable) Register(prefix string, group http.Handler) error {
	if group == nil {
		return errors.Newf(errors.ErrCodeRoutePrefixInvalid, "route prefix %q has no handler group", prefix)
	}
	p, err := normalizePrefix(prefix)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen {
		return errors.Newf(errors.ErrCodeRouteTableFrozen, "cannot register %q after dispatch has started", p)
	}
	for _, e := range t.entries {
		if e.Prefix == p {
			return errors.Newf(errors.ErrCodeRoutePrefixDuplicate, "route prefix %q is already registered", p)
		}
	}
	t.entries = append(t.entries, RouteEntry{Prefix: p, Group: group})
	return nil
}

// MustRegister is Register that panics on error.
func (t *RouteTable) MustRegister(prefix string, group http.Handler) {
	if err := t.Register(prefix, group); err != nil {
		panic(err)
	}
}

func coversPath(prefix, path string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Match returns the first entry covering path.
func (t *RouteTable) Match(path string) (RouteEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, e := range t.entries {
		if coversPath(e.Prefix, path) {
			return e, true
		}
	}
	return RouteEntry{}, false
}

// Entries returns a copy of the registered entries in dispatch order.
func (t *RouteTable) Entries() []RouteEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]RouteEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Frozen reports whether the table has started dispatching.
func (t *RouteTable) Frozen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frozen
}

func (t *RouteTable) freeze() {
	t.mu.RLock()
	frozen := t.frozen
	t.mu.RUnlock()
	if frozen {
		return
	}
	t.mu.Lock()
	t.frozen = true
	t.mu.Unlock()
}

func (t *RouteTable) recordDispatch(label string) {
	if t.metrics != nil {
		t.metrics.DispatchTotal.WithLabelValues(label).Inc()
	}
}

// ServeHTTP dispatches r.  GET and HEAD on the root path get the welcome
// payload; an unmatched path gets a 404 "Cannot <METHOD> <path>" envelope.
// A matched group sees the path with its prefix stripped.
func (t *RouteTable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t.freeze()

	path := r.URL.Path
	if path == "" || path == "/" {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			t.recordDispatch(dispatchLabelRoot)
			handlers.Welcome(w, r)
			return
		}
		t.recordDispatch(dispatchLabelNone)
		handlers.NotFound(w, r)
		return
	}

	entry, ok := t.Match(path)
	if !ok {
		t.recordDispatch(dispatchLabelNone)
		handlers.NotFound(w, r)
		return
	}

	t.recordDispatch(entry.Prefix)
	entry.Group.ServeHTTP(w, stripPrefix(r, entry.Prefix))
}

// stripPrefix returns a shallow copy of r whose path has prefix removed.  The
// remaining path always starts with "/".
func stripPrefix(r *http.Request, prefix string) *http.Request {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if rest == "" {
		rest = "/"
	}
	rawRest := ""
	if r.URL.RawPath != "" && strings.HasPrefix(r.URL.RawPath, prefix) {
		rawRest = strings.TrimPrefix(r.URL.RawPath, prefix)
		if rawRest == "" {
			rawRest = "/"
		}
	}

	ctx := context.WithValue(r.Context(), routeCtxKey{}, prefix)
	r2 := r.WithContext(ctx)
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = rest
	r2.URL.RawPath = rawRest
	return r2
}

// NewAPIRouteTable registers one group per API area under APIPrefix, in the
// order of handlers.Areas.  Areas missing from groups get a placeholder that
// answers 501.
func NewAPIRouteTable(groups map[string]http.Handler, opts ...RouteTableOption) (*RouteTable, error) {
	t := NewRouteTable(opts...)
	for _, area := range handlers.Areas {
		group, ok := groups[area]
		if !ok || group == nil {
			group = handlers.NewAreaHandler(area)
		}
		if err := t.Register(APIPrefix+"/"+area, group); err != nil {
			return nil, err
		}
	}
	for area := range groups {
		if !isKnownArea(area) {
			return nil, errors.Newf(errors.ErrCodeRoutePrefixInvalid, "unknown API area %q", area)
		}
	}
	return t, nil
}

func isKnownArea(area string) bool {
	for _, a := range handlers.Areas {
		if a == area {
			return true
		}
	}
	return false
}

//Personal.AI order the ending

package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/turtacn/JobPortal/internal/config"
)

// Header names written by the CORS middleware.
const (
	HeaderOrigin           = "Origin"
	HeaderVary             = "Vary"
	HeaderAllowOrigin      = "Access-Control-Allow-Origin"
	HeaderAllowMethods     = "Access-Control-Allow-Methods"
	HeaderAllowHeaders     = "Access-Control-Allow-Headers"
	HeaderAllowCredentials = "Access-Control-Allow-Credentials"
	HeaderExposeHeaders    = "Access-Control-Expose-Headers"
	HeaderMaxAge           = "Access-Control-Max-Age"
	wildcardOrigin         = "*"
)

// CORSDecision is the outcome of evaluating one request origin.
type CORSDecision struct {
	Allowed          bool
	AllowOrigin      string
	AllowMethods     string
	AllowHeaders     string
	ExposeHeaders    string
	AllowCredentials bool
	MaxAge           int

	// VaryOrigin is set when AllowOrigin depends on the request's Origin.
	VaryOrigin bool
}

// Apply writes the decision onto h.  Rejected decisions write nothing.
// Max-Age is only meaningful on a pre-flight response and Expose-Headers only
// on an actual one.
func (d CORSDecision) Apply(h http.Header, preflight bool) {
	if !d.Allowed {
		return
	}
	if d.VaryOrigin {
		h.Add(HeaderVary, HeaderOrigin)
	}
	h.Set(HeaderAllowOrigin, d.AllowOrigin)
	h.Set(HeaderAllowMethods, d.AllowMethods)
	h.Set(HeaderAllowHeaders, d.AllowHeaders)
	if d.AllowCredentials {
		h.Set(HeaderAllowCredentials, "true")
	}
	if preflight {
		if d.MaxAge > 0 {
			h.Set(HeaderMaxAge, strconv.Itoa(d.MaxAge))
		}
		return
	}
	if d.ExposeHeaders != "" {
		h.Set(HeaderExposeHeaders, d.ExposeHeaders)
	}
}

// OriginPolicy decides which origins may call the API.  It is immutable after
// construction and safe for concurrent use.
type OriginPolicy struct {
	permissive       bool
	allowAll         bool
	originSet        map[string]bool
	wildcardPatterns []string

	methods     string
	headers     string
	exposed     string
	credentials bool
	maxAge      int
}

// NewOriginPolicy builds a policy from cfg.  Empty method and header lists
// fall back to the configured defaults.
func NewOriginPolicy(cfg config.CORSConfig) *OriginPolicy {
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = config.DefaultCORSMethods
	}
	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = config.DefaultCORSHeaders
	}

	p := &OriginPolicy{
		permissive:  cfg.Mode != config.CORSModeAllowlist,
		originSet:   make(map[string]bool, len(cfg.AllowedOrigins)),
		methods:     strings.Join(methods, ", "),
		headers:     strings.Join(headers, ", "),
		exposed:     strings.Join(cfg.ExposedHeaders, ", "),
		credentials: cfg.AllowCredentials,
		maxAge:      cfg.MaxAge,
	}

	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		switch {
		case origin == wildcardOrigin:
			p.allowAll = true
		case cfg.AllowWildcard && strings.HasPrefix(origin, "*."):
			p.wildcardPatterns = append(p.wildcardPatterns, strings.ToLower(origin[1:]))
		case origin != "":
			p.originSet[strings.ToLower(origin)] = true
		}
	}
	return p
}

// Permissive reports whether the policy accepts every origin.
func (p *OriginPolicy) Permissive() bool { return p.permissive }

func (p *OriginPolicy) isOriginAllowed(origin string) bool {
	if p.permissive || p.allowAll {
		return true
	}
	lower := strings.ToLower(origin)
	if p.originSet[lower] {
		return true
	}
	for _, pattern := range p.wildcardPatterns {
		if strings.HasSuffix(lower, pattern) {
			return true
		}
	}
	return false
}

// Evaluate produces the decision for a request carrying origin, which may be
// empty.
//
// Permissive mode echoes the origin, or answers "*" when the request has none.
// Allowlist mode only answers requests whose origin is on the list.
func (p *OriginPolicy) Evaluate(origin string) CORSDecision {
	d := CORSDecision{
		AllowMethods:     p.methods,
		AllowHeaders:     p.headers,
		ExposeHeaders:    p.exposed,
		AllowCredentials: p.credentials,
		MaxAge:           p.maxAge,
	}

	if origin == "" {
		if !p.permissive {
			return CORSDecision{}
		}
		d.Allowed = true
		d.AllowOrigin = wildcardOrigin
		return d
	}

	if !p.isOriginAllowed(origin) {
		return CORSDecision{}
	}

	d.Allowed = true
	if !p.permissive && p.allowAll && !p.credentials {
		d.AllowOrigin = wildcardOrigin
		return d
	}
	d.AllowOrigin = origin
	d.VaryOrigin = true
	return d
}

// CORS returns middleware applying policy.  Every OPTIONS request is answered
// here with 204 and an empty body; it never reaches next.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	policy := NewOriginPolicy(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := policy.Evaluate(r.Header.Get(HeaderOrigin))
			preflight := r.Method == http.MethodOptions
			decision.Apply(w.Header(), preflight)

			if preflight {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

//Personal.AI order the ending

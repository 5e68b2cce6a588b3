package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds CORS configuration options.
type CORSConfig struct {
	// AllowedOrigins lists exact origins or "*.domain" subdomain patterns.
	// An empty list denies every cross-origin request.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
}

// DefaultCORSConfig returns defaults for the admin SPA. Tokens travel in the
// Authorization header, so credentials mode is never enabled.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID", "Accept", "Accept-Language"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         86400,
	}
}

// CORS handles cross-origin requests and preflights for allowed origins.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")
	maxAge := ""
	if cfg.MaxAge > 0 {
		maxAge = strconv.Itoa(cfg.MaxAge)
	}

	exact := make(map[string]bool, len(cfg.AllowedOrigins))
	var suffixes []string
	for _, o := range cfg.AllowedOrigins {
		o = strings.ToLower(strings.TrimSpace(o))
		if strings.HasPrefix(o, "*.") {
			suffixes = append(suffixes, o[1:])
			continue
		}
		exact[o] = true
	}

	allowed := func(origin string) bool {
		origin = strings.ToLower(origin)
		if exact[origin] {
			return true
		}
		host := origin
		if i := strings.Index(host, "://"); i >= 0 {
			host = host[i+3:]
		}
		for _, s := range suffixes {
			// "*.full9.co.th" matches "admin.full9.co.th", not "evilfull9.co.th".
			if strings.HasSuffix(host, s) && len(host) > len(s) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			if !allowed(origin) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			if exposed != "" {
				w.Header().Set("Access-Control-Expose-Headers", exposed)
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				if maxAge != "" {
					w.Header().Set("Access-Control-Max-Age", maxAge)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

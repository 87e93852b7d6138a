package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/wildlife-backend/internal/config"
)

// exposedHeaders are response headers browser clients need to read: the
// request ID for support reports and Retry-After on 429.
const exposedHeaders = RequestIDHeader + ", Retry-After"

// originMatcher holds the configured origins: "*" allows everything,
// "https://*.example.org" allows any subdomain, anything else is exact.
type originMatcher struct {
	any      bool
	exact    map[string]bool
	suffixes []string
}

func newOriginMatcher(list string) originMatcher {
	m := originMatcher{exact: map[string]bool{}}
	for _, o := range strings.Split(list, ",") {
		o = strings.TrimSpace(o)
		switch {
		case o == "":
		case o == "*":
			m.any = true
		case strings.Contains(o, "://*."):
			scheme, host, _ := strings.Cut(o, "://*.")
			m.suffixes = append(m.suffixes, scheme+"://|."+host)
		default:
			m.exact[o] = true
		}
	}
	return m
}

func (m originMatcher) allows(origin string) bool {
	if m.any || m.exact[origin] {
		return true
	}
	for _, s := range m.suffixes {
		scheme, host, _ := strings.Cut(s, "|")
		if strings.HasPrefix(origin, scheme) && strings.HasSuffix(origin, host) &&
			len(origin) > len(scheme)+len(host) {
			return true
		}
	}
	return false
}

// CORS answers preflights and sets the allow headers for permitted origins.
func CORS(cfg config.CORSConfig) Middleware {
	origins := newOriginMatcher(cfg.AllowedOrigins)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			allowed := origin != "" && origins.allows(origin)
			if allowed {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Expose-Headers", exposedHeaders)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if allowed {
					h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
					h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
					h.Set("Access-Control-Max-Age", maxAge)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

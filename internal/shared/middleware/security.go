package middleware

import (
	"net"
	"net/http"
	"strings"
)

// HSTS tells browsers to use HTTPS for a year, subdomains included.
func HSTS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// SecureCookies forces Secure, HttpOnly and SameSite on every cookie the
// wrapped handler sets.
func SecureCookies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&secureCookieWriter{ResponseWriter: w}, r)
	})
}

type secureCookieWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *secureCookieWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *secureCookieWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	header := w.ResponseWriter.Header()
	if cookies := header.Values("Set-Cookie"); len(cookies) > 0 {
		header.Del("Set-Cookie")
		for _, raw := range cookies {
			header.Add("Set-Cookie", hardenCookie(raw))
		}
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

// hardenCookie returns raw with the secure attributes set. Cookies that cannot
// be parsed are passed through unchanged.
func hardenCookie(raw string) string {
	c, err := http.ParseSetCookie(raw)
	if err != nil {
		return raw
	}
	c.Secure = true
	c.HttpOnly = true
	if c.SameSite == 0 || c.SameSite == http.SameSiteDefaultMode {
		c.SameSite = http.SameSiteStrictMode
	}
	return c.String()
}

// IsHostAllowed reports whether host, with or without a port, names one of
// allowedHosts. Ports are ignored and IPv6 literals may be bracketed.
// An empty allow list accepts every host.
func IsHostAllowed(host string, allowedHosts []string) bool {
	if len(allowedHosts) == 0 {
		return true
	}

	name := hostname(host)
	for _, allowed := range allowedHosts {
		if name == hostname(allowed) {
			return true
		}
	}
	return false
}

func hostname(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if name, _, err := net.SplitHostPort(h); err == nil {
		return name
	}
	return strings.Trim(h, "[]")
}

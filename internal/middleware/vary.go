package middleware

import "net/http"

// VaryLocale sets Vary headers for the request inputs that change rendered
// output: the visitor's language and the color-scheme client hint.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		w.Header().Add("Vary", "Sec-CH-Prefers-Color-Scheme")
		next.ServeHTTP(w, r)
	})
}

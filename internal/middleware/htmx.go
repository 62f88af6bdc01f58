package middleware

import (
	"encoding/json"
	"net/http"
)

// HTMX marks requests coming from htmx so handlers can respond with fragments
// instead of full pages.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		ctx := WithHTMX(r.Context(), is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HXTrigger sets the HX-Trigger response header with a named client event and
// optional detail payload.
func HXTrigger(w http.ResponseWriter, event string, detail any) {
	payload, err := json.Marshal(map[string]any{event: detail})
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(payload))
}

package response

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/agentstation/apitemplate/pkg/jsonutil"
)

// String writes s as text/plain unless the client prefers JSON, in which
// case s is written as a JSON string.
func String(w http.ResponseWriter, r *http.Request, status int, s string) {
	if PrefersJSON(r.Header.Values("Accept")) {
		data, err := jsonutil.Marshal(s)
		if err == nil {
			w.Header().Set("Content-Type", ContentTypeJSON)
			w.WriteHeader(status)
			_, _ = w.Write(data)
			return
		}
	}

	w.Header().Set("Content-Type", ContentTypeText)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(s))
}

// PrefersJSON reports whether the Accept header ranks application/json above
// text/plain. Ties, wildcards and unparseable headers favour text.
func PrefersJSON(accept []string) bool {
	jsonQ, textQ := -1.0, -1.0

	for _, header := range accept {
		for _, part := range strings.Split(header, ",") {
			mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			q := 1.0
			if v, ok := params["q"]; ok {
				if parsed, err := strconv.ParseFloat(v, 64); err == nil {
					q = parsed
				}
			}

			switch mediaType {
			case "application/json", "application/*":
				jsonQ = max(jsonQ, q)
			case "text/plain", "text/*":
				textQ = max(textQ, q)
			case "*/*":
				textQ = max(textQ, q)
			}
		}
	}

	return jsonQ > 0 && jsonQ > textQ
}

// AcceptsHTML reports whether the client lists text/html in Accept.
func AcceptsHTML(r *http.Request) bool {
	for _, header := range r.Header.Values("Accept") {
		for _, part := range strings.Split(header, ",") {
			mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
			if err == nil && mediaType == "text/html" {
				return true
			}
		}
	}
	return false
}

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	slogcontext "github.com/veqryn/slog-context"
)

// sendJSONResponse writes data with Content-Type, Content-Length and ETag headers.
// A matching If-None-Match on a 200 response yields 304 with no body.
func (s *Server) sendJSONResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := sonic.ConfigStd.Marshal(data)
	if err != nil {
		slogcontext.FromCtx(r.Context()).Error("failed to encode response", "error", err)
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	w.Header().Set("ETag", etag)

	if status == http.StatusOK && etagMatches(r.Header.Values("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		slogcontext.FromCtx(r.Context()).Warn("failed to write response", "error", err)
	}
}

// etagMatches applies the weak comparison used for If-None-Match: any listed tag,
// with or without a W/ prefix, or "*" matches.
func etagMatches(headers []string, etag string) bool {
	for _, header := range headers {
		for _, candidate := range strings.Split(header, ",") {
			candidate = strings.TrimSpace(candidate)
			if candidate == "*" {
				return true
			}
			if strings.TrimPrefix(candidate, "W/") == etag {
				return true
			}
		}
	}
	return false
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// pathID parses the {id} path parameter as a positive integer.
func pathID(r *http.Request) (int64, bool) {
	return pathIDValue(chi.URLParam(r, "id"))
}

func pathIDValue(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// pathPage parses the {page} path parameter, defaulting to 1 when absent.
// Out-of-range pages are left to the pagination layer, which clamps them.
func pathPage(r *http.Request) int {
	raw := chi.URLParam(r, "page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// queryPage parses the page= query parameter the same way.
func queryPage(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// formValue reads a trimmed form field.
func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// formBool reports whether a checkbox-style field was submitted truthy.
func formBool(r *http.Request, name string) bool {
	switch strings.ToLower(formValue(r, name)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// formInt parses an integer form field, falling back to def when the
// field is absent or malformed.
func formInt(r *http.Request, name string, def int) int {
	raw := formValue(r, name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// splitTags turns a comma-separated tag field into individual names.
// Empty entries are dropped; the service layer dedupes.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

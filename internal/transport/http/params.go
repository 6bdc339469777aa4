package http

import (
	"net/http"
	"strconv"
	"strings"
)

// pageParams reads page and pageSize. Missing values are 0 and get the
// configured defaults downstream; negative values are clamped there too.
func pageParams(r *http.Request) (page, size int, err error) {
	if page, err = intParam(r, "page"); err != nil {
		return 0, 0, err
	}
	// "size" is accepted as an alias.
	name := "pageSize"
	if r.URL.Query().Get(name) == "" && r.URL.Query().Get("size") != "" {
		name = "size"
	}
	if size, err = intParam(r, name); err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidInput(name + " must be an integer")
	}
	return v, nil
}

func stringParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// splitTags accepts repeated "tags" fields and comma-separated lists.
func splitTags(values []string) []string {
	var out []string
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				out = append(out, tag)
			}
		}
	}
	return out
}

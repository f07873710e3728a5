package validators

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/pagination"
)

const maxCursorLen = 512

// ParseQueryInt reads key as an integer in [lo, hi]; an absent or blank
// value yields def.
func ParseQueryInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		return 0, queryError(key, "must be a whole number", nil)
	case value < lo || value > hi:
		return 0, queryError(key, "out of range", map[string]any{"min": lo, "max": hi})
	}
	return value, nil
}

func queryError(key, problem string, extra map[string]any) error {
	details := map[string]any{"field": key}
	for k, v := range extra {
		details[k] = v
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "query parameter "+key+" "+problem).WithDetails(details)
}

// ParsePage reads the product grid page and page size.
func ParsePage(r *http.Request) (pagination.Page, error) {
	number, err := ParseQueryInt(r, "page", 1, 1, pagination.MaxPageNumber)
	if err != nil {
		return pagination.Page{}, err
	}
	size, err := ParseQueryInt(r, "limit", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
	if err != nil {
		return pagination.Page{}, err
	}
	return pagination.NewPage(number, size), nil
}

// ParseCursorParams reads limit and cursor for keyset-paginated lists.
func ParseCursorParams(r *http.Request) (pagination.Params, error) {
	limit, err := ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Cursor: SanitizeString(r.URL.Query().Get("cursor"), maxCursorLen)}, nil
}

// SanitizeString trims input and cuts it to at most maxLen bytes without
// splitting a rune. maxLen <= 0 means no limit.
func SanitizeString(input string, maxLen int) string {
	s := strings.TrimSpace(input)
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

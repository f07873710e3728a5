package catalog

import (
	"fmt"
	"math"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/money"
)

// Query parameter names of the shop URL.
const (
	ParamSort       = "sort"
	ParamSizes      = "sizes"
	ParamColors     = "colors"
	ParamMinPrice   = "minPrice"
	ParamMaxPrice   = "maxPrice"
	ParamCollection = "collection"
)

// MaxPriceBound is the largest price bound, in major units, that still fits in
// minor units.
const MaxPriceBound = math.MaxInt64 / money.MinorPerMajor

const (
	shopPath       = "/shop"
	categoryPath   = "category"
	collectionPath = "collection"
)

// EncodeQuery renders the query-string part of spec. Category and collection
// travel in the path, and default values are omitted.
func EncodeQuery(spec FilterSpec) url.Values {
	values := url.Values{}
	if spec.Sort != "" && spec.Sort != enums.DefaultSortKey {
		values.Set(ParamSort, spec.Sort.String())
	}
	if sizes := joinList(spec.Sizes); sizes != "" {
		values.Set(ParamSizes, sizes)
	}
	if colors := joinList(spec.Colors); colors != "" {
		values.Set(ParamColors, colors)
	}
	if spec.MinPrice != DefaultMinPrice {
		values.Set(ParamMinPrice, strconv.Itoa(spec.MinPrice))
	}
	if spec.MaxPrice != DefaultMaxPrice {
		values.Set(ParamMaxPrice, strconv.Itoa(spec.MaxPrice))
	}
	return values
}

// DecodeQuery parses the shop query string. Absent parameters take their
// defaults; malformed ones are rejected with a validation error.
func DecodeQuery(values url.Values) (FilterSpec, error) {
	spec := DefaultFilterSpec()

	sort, err := enums.ParseSortKey(strings.TrimSpace(values.Get(ParamSort)))
	if err != nil {
		return FilterSpec{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").
			WithDetails(map[string]any{"field": ParamSort, "allowed": enums.SortKeys()})
	}
	spec.Sort = sort
	spec.Sizes = splitList(strings.Join(values[ParamSizes], ","))
	spec.Colors = splitList(strings.Join(values[ParamColors], ","))

	if spec.MinPrice, err = decodePrice(values, ParamMinPrice, DefaultMinPrice); err != nil {
		return FilterSpec{}, err
	}
	if spec.MaxPrice, err = decodePrice(values, ParamMaxPrice, DefaultMaxPrice); err != nil {
		return FilterSpec{}, err
	}
	if spec.MinPrice > spec.MaxPrice {
		return FilterSpec{}, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must not exceed maxPrice").
			WithDetails(map[string]any{ParamMinPrice: spec.MinPrice, ParamMaxPrice: spec.MaxPrice})
	}
	return spec, nil
}

// QueryString is the encoded query without the leading "?".
func (s FilterSpec) QueryString() string {
	return EncodeQuery(s).Encode()
}

// Location renders the shop URL for s, e.g. /shop/category/bottoms?sort=newest.
// When both category and collection are set the collection rides in the query.
func (s FilterSpec) Location() string {
	values := EncodeQuery(s)
	p := shopPath
	switch {
	case s.Category != "":
		p = path.Join(shopPath, categoryPath, url.PathEscape(s.Category))
		if s.Collection != "" {
			values.Set(ParamCollection, s.Collection)
		}
	case s.Collection != "":
		p = path.Join(shopPath, collectionPath, url.PathEscape(s.Collection))
	}
	if encoded := values.Encode(); encoded != "" {
		return p + "?" + encoded
	}
	return p
}

// ParseLocation decodes a shop URL path and raw query back into a FilterSpec.
func ParseLocation(urlPath, rawQuery string) (FilterSpec, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return FilterSpec{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid query string")
	}
	spec, err := DecodeQuery(values)
	if err != nil {
		return FilterSpec{}, err
	}

	segments := strings.Split(strings.Trim(urlPath, "/"), "/")
	if len(segments) == 0 || segments[0] != strings.TrimPrefix(shopPath, "/") {
		return FilterSpec{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("not a shop location: %q", urlPath))
	}
	switch len(segments) {
	case 1:
	case 3:
		slug, err := url.PathUnescape(segments[2])
		if err != nil || strings.TrimSpace(slug) == "" {
			return FilterSpec{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid shop segment")
		}
		switch segments[1] {
		case categoryPath:
			spec.Category = slug
		case collectionPath:
			spec.Collection = slug
		default:
			return FilterSpec{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("not a shop location: %q", urlPath))
		}
	default:
		return FilterSpec{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("not a shop location: %q", urlPath))
	}

	if spec.Collection == "" {
		spec.Collection = strings.TrimSpace(values.Get(ParamCollection))
	}
	return spec, nil
}

func decodePrice(values url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, key+" must be an integer").
			WithDetails(map[string]any{"field": key, "value": raw})
	}
	if n < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" must not be negative").
			WithDetails(map[string]any{"field": key, "value": raw})
	}
	if int64(n) > MaxPriceBound {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" is out of range").
			WithDetails(map[string]any{"field": key, "value": raw, "max": int64(MaxPriceBound)})
	}
	return n, nil
}

// splitList splits a comma list, dropping empty and repeated entries.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}

func joinList(items []string) string {
	return strings.Join(splitList(strings.Join(items, ",")), ",")
}

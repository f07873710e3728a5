package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the standard page size for cursor queries.
	DefaultLimit = 25
	// MaxLimit caps how many rows any cursor query can request.
	MaxLimit = 100

	// DefaultPageSize is the product grid page size.
	DefaultPageSize = 12
	// MaxPageSize caps how many products one grid page can hold.
	MaxPageSize = 48
	// MaxPageNumber caps grid page numbers so offsets cannot overflow.
	MaxPageNumber = 1 << 20
)

// Params holds cursor pagination inputs from controllers or services.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor represents the pagination cursor components.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// NormalizeLimit clamps a requested cursor page size into (0, MaxLimit].
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// LimitWithBuffer is the row count to fetch so one extra row reveals a next page.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// Window trims rows fetched with LimitWithBuffer down to the page and
// returns the cursor of the last kept row when more rows exist.
func Window[T any](rows []T, limit int, cursorOf func(T) Cursor) ([]T, *Cursor) {
	n := NormalizeLimit(limit)
	if len(rows) <= n {
		return rows, nil
	}
	rows = rows[:n]
	next := cursorOf(rows[n-1])
	return rows, &next
}

// EncodeCursor renders <unix-nanos>.<uuid> as unpadded URL-safe base64.
func EncodeCursor(cursor Cursor) string {
	raw := strconv.FormatInt(cursor.CreatedAt.UnixNano(), 10) + "." + cursor.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// ParseCursor decodes an EncodeCursor string. Blank input is no cursor.
func ParseCursor(value string) (*Cursor, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	nanos, id, ok := strings.Cut(string(raw), ".")
	if !ok {
		return nil, errors.New("invalid cursor format")
	}
	ns, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor id: %w", err)
	}
	return &Cursor{CreatedAt: time.Unix(0, ns).UTC(), ID: uid}, nil
}

// Page is a 1-based offset page over an in-memory or SQL result.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"per_page"`
}

// NewPage clamps number to [1, MaxPageNumber] and size to (0, MaxPageSize].
func NewPage(number, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Page{Number: min(max(number, 1), MaxPageNumber), Size: min(size, MaxPageSize)}
}

// Offset is the index of the first element on the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Bounds returns the [start, end) slice window for total elements.
func (p Page) Bounds(total int) (int, int) {
	start := min(max(p.Offset(), 0), total)
	return start, min(start+p.Size, total)
}

// TotalPages returns how many pages total elements span; zero elements span zero pages.
func (p Page) TotalPages(total int) int {
	if total <= 0 || p.Size <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}

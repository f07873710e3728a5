package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	cases := map[int]int{0: DefaultLimit, -3: DefaultLimit, 10: 10, 500: MaxLimit}
	for in, want := range cases {
		if got := NormalizeLimit(in); got != want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", in, got, want)
		}
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Fatalf("expected buffered limit 11, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	in := Cursor{CreatedAt: time.Date(2023, 9, 15, 10, 0, 0, 123, time.UTC), ID: uuid.New()}
	out, err := ParseCursor(EncodeCursor(in))
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if !out.CreatedAt.Equal(in.CreatedAt) || out.ID != in.ID {
		t.Fatalf("cursor mismatch: %+v vs %+v", out, in)
	}

	if c, err := ParseCursor(""); c != nil || err != nil {
		t.Fatalf("blank cursor should be nil, got %v %v", c, err)
	}
	if _, err := ParseCursor("%%%"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestWindow(t *testing.T) {
	rows := []int{1, 2, 3, 4}
	cursorOf := func(v int) Cursor { return Cursor{CreatedAt: time.Unix(int64(v), 0)} }

	page, next := Window(rows, 3, cursorOf)
	if len(page) != 3 || next == nil || next.CreatedAt.Unix() != 3 {
		t.Fatalf("expected 3 rows and a cursor at 3, got %v %+v", page, next)
	}
	page, next = Window(rows[:3], 3, cursorOf)
	if len(page) != 3 || next != nil {
		t.Fatalf("exact page must not report more, got %v %+v", page, next)
	}
}

func TestPageBounds(t *testing.T) {
	p := NewPage(2, 3)
	start, end := p.Bounds(8)
	if start != 3 || end != 6 {
		t.Fatalf("unexpected bounds [%d,%d)", start, end)
	}
	if got := p.TotalPages(8); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}

	last := NewPage(3, 3)
	if start, end := last.Bounds(8); start != 6 || end != 8 {
		t.Fatalf("unexpected last page bounds [%d,%d)", start, end)
	}

	beyond := NewPage(9, 3)
	if start, end := beyond.Bounds(8); start != 8 || end != 8 {
		t.Fatalf("page past the end should be empty, got [%d,%d)", start, end)
	}

	wrapped := Page{Number: 288230376151711745, Size: MaxPageSize}
	if start, end := wrapped.Bounds(8); start < 0 || start > end || end > 8 {
		t.Fatalf("overflowing offset must stay in range, got [%d,%d)", start, end)
	}
}

func TestNewPageClamps(t *testing.T) {
	p := NewPage(0, 0)
	if p.Number != 1 || p.Size != DefaultPageSize {
		t.Fatalf("unexpected defaults %+v", p)
	}
	if got := NewPage(1, 1000).Size; got != MaxPageSize {
		t.Fatalf("expected size clamp to %d, got %d", MaxPageSize, got)
	}
	if got := NewPage(1<<60, MaxPageSize).Number; got != MaxPageNumber {
		t.Fatalf("expected page clamp to %d, got %d", MaxPageNumber, got)
	}
	if got := NewPage(1, 12).TotalPages(0); got != 0 {
		t.Fatalf("expected zero pages for empty result, got %d", got)
	}
}

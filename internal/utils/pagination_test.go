package utils

import (
	"math"
	"net/url"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
		wantErr    bool
	}{
		{"defaults", "", 0, DefaultPageLimit, false},
		{"explicit", "offset=20&limit=5", 20, 5, false},
		{"negative offset", "offset=-1", 0, 0, true},
		{"limit too large", "limit=1000", 0, 0, true},
		{"not a number", "limit=ten", 0, 0, true},
		{"largest offset", "offset=2147483647", MaxPageOffset, DefaultPageLimit, false},
		{"offset past bound", "offset=2147483648", 0, 0, true},
		{"offset near max int", "offset=9223372036854775800", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			offset, limit, err := ParsePagination(q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: %v", err)
			}
			if !tt.wantErr && (offset != tt.wantOffset || limit != tt.wantLimit) {
				t.Errorf("got %d/%d", offset, limit)
			}
		})
	}
}

func TestPageLinks(t *testing.T) {
	next, prev := PageLinks("/admin/users", 0, 10, 25, nil)
	if next != "/admin/users?limit=10&offset=10" || prev != "" {
		t.Errorf("first page: next=%q prev=%q", next, prev)
	}

	next, prev = PageLinks("/admin/users", 20, 10, 25, nil)
	if next != "" || prev != "/admin/users?limit=10&offset=10" {
		t.Errorf("last page: next=%q prev=%q", next, prev)
	}

	_, prev = PageLinks("/admin/users", 5, 10, 25, nil)
	if prev != "/admin/users?limit=10&offset=0" {
		t.Errorf("prev clamps to zero: %q", prev)
	}
}

func TestPageLinksHugeOffset(t *testing.T) {
	next, prev := PageLinks("/admin/users", math.MaxInt-5, 10, 25, nil)
	if next != "" {
		t.Errorf("no next page past the end, got %q", next)
	}
	if prev == "" {
		t.Error("expected a prev link")
	}
}

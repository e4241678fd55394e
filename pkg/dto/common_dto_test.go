package dto

import "testing"

func TestPageQueryOffset(t *testing.T) {
	tests := []struct {
		page  int
		limit int
		want  int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
	}

	for _, tt := range tests {
		q := PageQuery{Page: tt.page, Limit: tt.limit}
		if got := q.Offset(); got != tt.want {
			t.Errorf("Offset(page=%d, limit=%d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPages int
	}{
		{"exact fit", 1, 10, 30, 3},
		{"partial last page", 1, 10, 31, 4},
		{"empty", 1, 10, 0, 0},
		{"single item", 1, 10, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewPaginationMeta(tt.page, tt.limit, tt.total)
			if meta.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", meta.TotalPages, tt.wantPages)
			}
			if meta.TotalItems != tt.total {
				t.Errorf("TotalItems = %d, want %d", meta.TotalItems, tt.total)
			}
		})
	}
}

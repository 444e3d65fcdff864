package paging

import "testing"

func TestComputeFirstPage(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		req       Request
		wantStart int
		wantEnd   int
		wantNext  bool
	}{
		{
			name:      "tail window when history exceeds page size",
			total:     25,
			req:       Request{Page: 1, PageSize: 20},
			wantStart: 5,
			wantEnd:   25,
			wantNext:  true,
		},
		{
			name:      "whole history when it fits",
			total:     12,
			req:       Request{Page: 1, PageSize: 20},
			wantStart: 0,
			wantEnd:   12,
			wantNext:  false,
		},
		{
			name:      "empty conversation",
			total:     0,
			req:       Request{Page: 1, PageSize: 20},
			wantStart: 0,
			wantEnd:   0,
			wantNext:  false,
		},
		{
			name:      "exactly one page",
			total:     20,
			req:       Request{Page: 1, PageSize: 20},
			wantStart: 0,
			wantEnd:   20,
			wantNext:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Compute(tt.total, tt.req)
			if w.Start != tt.wantStart || w.End != tt.wantEnd {
				t.Errorf("window = [%d, %d), want [%d, %d)", w.Start, w.End, tt.wantStart, tt.wantEnd)
			}
			if w.HasNext() != tt.wantNext {
				t.Errorf("HasNext() = %v, want %v", w.HasNext(), tt.wantNext)
			}
			if w.HasPrevious() {
				t.Error("HasPrevious() = true on page 1")
			}
		})
	}
}

func TestComputeOlderPages(t *testing.T) {
	// 25 messages, page size 20: page 2 is the oldest 5 messages.
	w := Compute(25, Request{Page: 2, PageSize: 20})
	if w.Start != 0 || w.End != 5 {
		t.Errorf("window = [%d, %d), want [0, 5)", w.Start, w.End)
	}
	if w.HasNext() {
		t.Error("HasNext() = true, want false")
	}
	if !w.HasPrevious() {
		t.Error("HasPrevious() = false, want true")
	}
	if w.PreviousPage() != 1 {
		t.Errorf("PreviousPage() = %d, want 1", w.PreviousPage())
	}
	if w.NextPage() != 0 {
		t.Errorf("NextPage() = %d, want 0", w.NextPage())
	}

	// Pages past the end of history collapse to an empty window.
	w = Compute(25, Request{Page: 3, PageSize: 20})
	if w.Len() != 0 {
		t.Errorf("Len() = %d, want 0", w.Len())
	}

	// Older pages are prefix slices that overlap: with 50 messages and page
	// size 20, page 2 covers [0, 30) which includes all of page 3's [0, 10).
	p2 := Compute(50, Request{Page: 2, PageSize: 20})
	p3 := Compute(50, Request{Page: 3, PageSize: 20})
	if p2.Start != 0 || p2.End != 30 {
		t.Errorf("page 2 window = [%d, %d), want [0, 30)", p2.Start, p2.End)
	}
	if p3.Start != 0 || p3.End != 10 {
		t.Errorf("page 3 window = [%d, %d), want [0, 10)", p3.Start, p3.End)
	}
	if !p2.HasNext() {
		t.Error("page 2 of 50 should report more history")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Request
		want Request
	}{
		{name: "defaults", in: Request{}, want: Request{Page: 1, PageSize: DefaultPageSize}},
		{name: "negative page", in: Request{Page: -2, PageSize: 10}, want: Request{Page: 1, PageSize: 10}},
		{name: "oversized page size capped", in: Request{Page: 1, PageSize: 500}, want: Request{Page: 1, PageSize: MaxPageSize}},
		{name: "in range untouched", in: Request{Page: 4, PageSize: 50}, want: Request{Page: 4, PageSize: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Package paging computes the message window for chat-history pagination.
//
// The client contract is "newest first": page 1 always holds the tail of the
// conversation, and higher page numbers reach further back. Pages beyond the
// first are prefix slices [0, total-(page-1)*size) of the chronological log,
// so they overlap rather than partition the history, and their boundaries
// shift whenever a new message lands. Callers must not assume disjoint pages
// for page > 1; this is a documented property of the algorithm, not a bug to
// be masked at a lower layer.
package paging

// Defaults and caps for page sizing.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Request carries the caller-supplied pagination parameters.
type Request struct {
	Page     int // 1-based
	PageSize int
}

// Normalize applies defaults and the page-size cap.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// Window is the half-open slice [Start, End) of the ascending message log
// that a page request resolves to, plus the flags the response carries.
type Window struct {
	Start    int
	End      int
	Total    int
	Page     int
	PageSize int
}

// Compute resolves a normalized request against the conversation's total
// message count.
//
//   - page == 1: the last min(total, size) messages, ascending.
//   - page > 1: the prefix [0, max(0, total-(page-1)*size)).
func Compute(total int, req Request) Window {
	req = req.Normalize()
	w := Window{Total: total, Page: req.Page, PageSize: req.PageSize}

	if req.Page == 1 {
		w.Start = total - req.PageSize
		if w.Start < 0 {
			w.Start = 0
		}
		w.End = total
		return w
	}

	w.Start = 0
	w.End = total - (req.Page-1)*req.PageSize
	if w.End < 0 {
		w.End = 0
	}
	return w
}

// Len returns the number of messages in the window.
func (w Window) Len() int {
	if w.End <= w.Start {
		return 0
	}
	return w.End - w.Start
}

// HasNext reports whether more history remains beyond this window.
func (w Window) HasNext() bool {
	if w.Page == 1 {
		return w.Total > w.PageSize
	}
	return w.End > w.PageSize
}

// HasPrevious reports whether a more recent page exists.
func (w Window) HasPrevious() bool {
	return w.Page > 1
}

// NextPage returns the next page number, or 0 when there is none.
func (w Window) NextPage() int {
	if !w.HasNext() {
		return 0
	}
	return w.Page + 1
}

// PreviousPage returns the previous page number, or 0 when there is none.
func (w Window) PreviousPage() int {
	if !w.HasPrevious() {
		return 0
	}
	return w.Page - 1
}

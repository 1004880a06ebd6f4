// Package pagination computes bounded page-number windows for list views.
// The computation is pure: given the current page, page size, total item
// count, and window width it returns the window of page links to render
// plus prev/next flags. It never touches the database.
package pagination

// DefaultWindowWidth is the number of page links shown in list views.
const DefaultWindowWidth = 7

// Window describes the pagination state for one list view.
type Window struct {
	// Pages is the consecutive run of page numbers to render,
	// at most the requested window width, always within [First, Last].
	Pages []int `json:"pages"`

	// Current is the page being viewed, clamped to [First, Last].
	Current int `json:"current"`

	First   int  `json:"first"`
	Last    int  `json:"last"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// Compute builds the page window for a list view.
//
// The last page is max(1, ceil(totalItems/pageSize)), so an empty list
// still yields a single page. The window is centered on the current page
// and shifted inward at either boundary so that exactly
// min(windowWidth, lastPage) pages are always shown.
//
// A current page outside [1, lastPage] — e.g. a stale bookmarked page
// number after posts were deleted — is clamped rather than rejected.
func Compute(currentPage, pageSize, totalItems, windowWidth int) Window {
	if pageSize < 1 {
		pageSize = 1
	}
	if windowWidth < 1 {
		windowWidth = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}

	last := (totalItems + pageSize - 1) / pageSize
	if last < 1 {
		last = 1
	}

	current := currentPage
	if current < 1 {
		current = 1
	}
	if current > last {
		current = last
	}

	width := windowWidth
	if width > last {
		width = last
	}

	// Center the window on the current page, then shift inward when it
	// would overflow either boundary.
	start := current - width/2
	if start < 1 {
		start = 1
	}
	if start+width-1 > last {
		start = last - width + 1
	}

	pages := make([]int, width)
	for i := range pages {
		pages[i] = start + i
	}

	return Window{
		Pages:   pages,
		Current: current,
		First:   1,
		Last:    last,
		HasPrev: current > 1,
		HasNext: current < last,
	}
}

// Offset returns the SQL OFFSET for a page, using the same clamping rules
// as Compute so a stale page number selects the last page's rows.
func Offset(currentPage, pageSize, totalItems int) int {
	w := Compute(currentPage, pageSize, totalItems, 1)
	return (w.Current - 1) * pageSize
}

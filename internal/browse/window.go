// Package browse reconciles the fixed TMDB listing page size with the
// app's own display grid size.
package browse

import (
	"fmt"

	"tmdb-movie-explorer/internal/tmdb"
)

// Window is one display page of results, stitched from one or two upstream
// pages when the grid size does not divide the upstream page size.
type Window struct {
	Items      []tmdb.Movie
	TotalItems int
	TotalPages int
}

// PageFetcher returns one upstream page by 1-based page number. Callers
// route it through the response cache.
type PageFetcher func(page int) (*tmdb.Page, error)

// ResolveWindow maps a 1-based display page onto the upstream paging scheme
// and returns the correctly sliced sub-sequence. It fetches at most two
// consecutive upstream pages: the second only when the first runs short at a
// page boundary while more items remain globally. A display page past the
// end yields an empty window with totals still filled in. TotalPages has a
// floor of 1 so a pager never degenerates, even with zero results.
func ResolveWindow(displayPage, displaySize, upstreamSize int, fetch PageFetcher) (*Window, error) {
	if displayPage < 1 {
		return nil, fmt.Errorf("display page must be >= 1, got %d", displayPage)
	}
	if displaySize < 1 || upstreamSize < 1 {
		return nil, fmt.Errorf("page sizes must be >= 1, got display=%d upstream=%d", displaySize, upstreamSize)
	}

	globalStart := (displayPage - 1) * displaySize
	upstreamPage := globalStart/upstreamSize + 1
	offset := globalStart % upstreamSize

	pageA, err := fetch(upstreamPage)
	if err != nil {
		return nil, err
	}

	totalItems := pageA.TotalResults
	totalPages := (totalItems + displaySize - 1) / displaySize
	if totalPages < 1 {
		totalPages = 1
	}

	// Slice clamped to what the page actually holds; running short here is
	// not an error.
	items := make([]tmdb.Movie, 0, displaySize)
	if offset < len(pageA.Results) {
		end := offset + displaySize
		if end > len(pageA.Results) {
			end = len(pageA.Results)
		}
		items = append(items, pageA.Results[offset:end]...)
	}

	// Top up from the next page only when the shortfall is a page-boundary
	// artifact rather than end-of-results.
	if len(items) < displaySize && upstreamPage < pageA.TotalPages {
		pageB, err := fetch(upstreamPage + 1)
		if err != nil {
			return nil, err
		}
		need := displaySize - len(items)
		if need > len(pageB.Results) {
			need = len(pageB.Results)
		}
		items = append(items, pageB.Results[:need]...)
	}

	return &Window{
		Items:      items,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

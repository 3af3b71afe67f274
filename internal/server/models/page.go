package models

import "github.com/dmitrijs2005/poolkeeper/internal/common"

// Page is an offset window over a list result.
type Page struct {
	Skip  int
	Limit int
}

// NewPage clamps skip and limit into a usable window.
func NewPage(skip, limit int) Page {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = common.DefaultListLimit
	}
	if limit > common.MaxListLimit {
		limit = common.MaxListLimit
	}
	return Page{Skip: skip, Limit: limit}
}

// Slice applies the window to an already ordered slice.
func Slice[T any](items []T, p Page) []T {
	if p.Skip >= len(items) {
		return []T{}
	}
	end := p.Skip + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Skip:end]
}

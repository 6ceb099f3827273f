package service

import "sync"

// Paginator tracks the current page of a fixed-size paged listing.
// It only moves forward when the last fetched page was full.
type Paginator struct {
	mu             sync.Mutex
	currentPage    int
	pageSize       int
	lastFetchedLen int
	fetched        bool
}

// NewPaginator starts at page 1. A non-positive pageSize falls back to 50.
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator{currentPage: 1, pageSize: pageSize}
}

func (p *Paginator) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentPage
}

func (p *Paginator) PageSize() int {
	return p.pageSize
}

// RecordFetch stores how many entries the most recent fetch of the current page returned.
func (p *Paginator) RecordFetch(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastFetchedLen = n
	p.fetched = true
}

func (p *Paginator) CanNext() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canNextLocked()
}

func (p *Paginator) canNextLocked() bool {
	return p.fetched && p.lastFetchedLen == p.pageSize
}

func (p *Paginator) CanPrev() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentPage > 1
}

// NextPage advances and reports whether the page changed.
func (p *Paginator) NextPage() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.canNextLocked() {
		return false
	}
	p.currentPage++
	p.fetched = false
	return true
}

// PrevPage steps back, never below page 1, and reports whether the page changed.
func (p *Paginator) PrevPage() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentPage <= 1 {
		return false
	}
	p.currentPage--
	p.fetched = false
	return true
}

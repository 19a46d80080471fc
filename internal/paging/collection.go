// Package paging holds the authoritative ordered note list of one group
// and exposes a fixed-size page window over it. The window is what a
// display layer binds its slots to; all structural changes to the list go
// through the collection so the list stays the single source of truth.
// The package has no display dependencies and is fully testable on its own.
package paging

import (
	"sort"

	"github.com/starford/daybook/internal/models"
)

// Direction of a Sort.
type Direction int

const (
	Ascending Direction = iota + 1
	Descending
)

// Slot is one window position. Record is edited in place by the display
// layer; Visible says whether the slot is currently revealed.
type Slot struct {
	Record  models.NoteRecord
	Visible bool
}

// Collection pairs an authoritative ordered note list with a page window
// of constant size. It is not safe for concurrent use.
type Collection struct {
	records    []models.NoteRecord
	window     []Slot
	windowSize int
	appendable bool

	page        int // 1-based; 0 when no page is loaded
	bound       int // slots bound to authoritative elements on the current page
	lastVisible int
	changed     bool
}

// New creates a collection over the given records. windowSize must be
// positive and stays constant for the collection's lifetime. Appendable
// collections keep one blank trailing slot revealed so the user can keep
// adding records.
func New(records []models.NoteRecord, windowSize int, appendable bool) *Collection {
	if windowSize < 1 {
		windowSize = 1
	}
	return &Collection{
		records:     records,
		window:      make([]Slot, windowSize),
		windowSize:  windowSize,
		appendable:  appendable,
		lastVisible: -1,
	}
}

// Len returns the length of the authoritative list.
func (c *Collection) Len() int { return len(c.records) }

// WindowSize returns the constant page window size.
func (c *Collection) WindowSize() int { return c.windowSize }

// Page returns the currently loaded page number, 0 when none.
func (c *Collection) Page() int { return c.page }

// LastVisible returns the index of the highest bound, populated slot on
// the current page, -1 when none.
func (c *Collection) LastVisible() int { return c.lastVisible }

// Changed reports whether the collection has unsaved mutations. Loading a
// page never alters this flag.
func (c *Collection) Changed() bool { return c.changed }

// SetChanged lets the display layer flag an in-place slot edit.
func (c *Collection) SetChanged(v bool) { c.changed = v }

// PageCount returns ceil(len/windowSize), at least 1. When the collection
// is appendable and the last page is exactly full, one extra page is
// reported so appending can continue past it.
func (c *Collection) PageCount() int {
	n := (len(c.records) + c.windowSize - 1) / c.windowSize
	if n < 1 {
		n = 1
	}
	if c.appendable && len(c.records) == n*c.windowSize {
		n++
	}
	return n
}

// LoadPage binds the window to page n (clamped to the valid range).
// Slots beyond the authoritative list are reset to fresh blank records and
// hidden; for appendable collections the first such slot is revealed as
// the append target. A nil-shaped record cannot occur in the list itself,
// but a bound element is always copied, never aliased, so display-side
// edits stay in the window until UnloadPage.
func (c *Collection) LoadPage(n int) {
	if n < 1 {
		n = 1
	}
	if last := c.PageCount(); n > last {
		n = last
	}
	base := (n - 1) * c.windowSize
	bound := len(c.records) - base
	if bound < 0 {
		bound = 0
	}
	if bound > c.windowSize {
		bound = c.windowSize
	}
	for i := 0; i < c.windowSize; i++ {
		if i < bound {
			c.window[i] = Slot{Record: c.records[base+i], Visible: true}
		} else {
			c.window[i] = Slot{}
		}
	}
	if c.appendable && bound < c.windowSize {
		c.window[bound].Visible = true
	}
	c.page = n
	c.bound = bound
	c.lastVisible = bound - 1
}

// UnloadPage copies every bound slot's record back into the authoritative
// list. Populated slots past the list's current end are appended; blank
// ones are not. Call this before paging away and before any save, or
// in-window edits are lost.
func (c *Collection) UnloadPage() {
	if c.page == 0 {
		return
	}
	base := (c.page - 1) * c.windowSize
	for i := 0; i < c.windowSize; i++ {
		idx := base + i
		switch {
		case idx < len(c.records):
			c.records[idx] = c.window[i].Record
		case c.window[i].Visible && c.window[i].Record.HasText():
			c.records = append(c.records, c.window[i].Record)
		}
	}
}

// Slot returns a pointer to the window slot's record for in-place editing,
// or nil when i is out of range.
func (c *Collection) Slot(i int) *models.NoteRecord {
	if i < 0 || i >= c.windowSize {
		return nil
	}
	return &c.window[i].Record
}

// SlotVisible reports whether window slot i is revealed.
func (c *Collection) SlotVisible(i int) bool {
	return i >= 0 && i < c.windowSize && c.window[i].Visible
}

// ActivateNext reveals the slot after i once the slot at i has been
// populated. It only acts at the window's growing edge: i must be at or
// past the last bound index. On a full final page there is no slot left
// to reveal; the append growth shows up through PageCount instead, and
// the caller pages forward to continue. Returns true when a new slot was
// revealed.
func (c *Collection) ActivateNext(i int) bool {
	if c.page == 0 || i < c.lastVisible || i >= c.windowSize {
		return false
	}
	if !c.window[i].Visible || !c.window[i].Record.HasText() {
		return false
	}
	if i > c.lastVisible {
		c.lastVisible = i
		if c.bound <= i {
			c.bound = i + 1
		}
	}
	if i == c.windowSize-1 {
		return false
	}
	if !c.window[i+1].Visible {
		c.window[i+1].Visible = true
		return true
	}
	return false
}

// Append adds a record to the end of the authoritative list and reloads
// the page containing it. The current window is unloaded first so pending
// edits survive.
func (c *Collection) Append(r models.NoteRecord) {
	c.UnloadPage()
	c.records = append(c.records, r)
	c.changed = true
	c.LoadPage((len(c.records)-1)/c.windowSize + 1)
}

// Prepend inserts a record at the front of the authoritative list and
// reloads the first page.
func (c *Collection) Prepend(r models.NoteRecord) {
	c.UnloadPage()
	c.records = append([]models.NoteRecord{r}, c.records...)
	c.changed = true
	c.LoadPage(1)
}

// Condense returns the authoritative list with blank records removed,
// preserving the order of the survivors. This is the gap-compaction step
// applied immediately before every save. The current window must already
// be unloaded by the caller.
func (c *Collection) Condense() []models.NoteRecord {
	out := make([]models.NoteRecord, 0, len(c.records))
	for _, r := range c.records {
		if r.HasText() {
			out = append(out, r)
		}
	}
	return out
}

// Sort orders the full authoritative list by cmp (negative means a before
// b) in the given direction, after folding the current window back in, and
// then reloads the current page.
func (c *Collection) Sort(cmp func(a, b models.NoteRecord) int, dir Direction) {
	c.UnloadPage()
	sort.SliceStable(c.records, func(i, j int) bool {
		if dir == Descending {
			return cmp(c.records[j], c.records[i]) < 0
		}
		return cmp(c.records[i], c.records[j]) < 0
	})
	c.changed = true
	page := c.page
	if page == 0 {
		page = 1
	}
	c.LoadPage(page)
}

// ShiftUp swaps window slot i with the one above it. Only bound slots
// move, and never across a page boundary.
func (c *Collection) ShiftUp(i int) bool {
	if c.page == 0 || i < 1 || i >= c.bound {
		return false
	}
	c.window[i], c.window[i-1] = c.window[i-1], c.window[i]
	c.changed = true
	return true
}

// ShiftDown swaps window slot i with the one below it. The trailing blank
// slot of an appendable window is not a swap target, and shifts never
// cross a page boundary.
func (c *Collection) ShiftDown(i int) bool {
	if c.page == 0 || i < 0 || i+1 >= c.bound {
		return false
	}
	c.window[i], c.window[i+1] = c.window[i+1], c.window[i]
	c.changed = true
	return true
}

// Records returns the authoritative list. The caller must treat it as
// read-only; mutations go through the collection's methods.
func (c *Collection) Records() []models.NoteRecord { return c.records }

// SetRecords replaces the authoritative list (used after a condense-save
// round trip) and drops any loaded page.
func (c *Collection) SetRecords(records []models.NoteRecord) {
	c.records = records
	c.page = 0
	c.bound = 0
	c.lastVisible = -1
	for i := range c.window {
		c.window[i] = Slot{}
	}
}

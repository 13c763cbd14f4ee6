// Package cursor remembers where in the catalog each logical result page
// started, so repeated requests for the same page resume from the same
// offset instead of re-scanning from the start.
package cursor

import "sync"

// Table maps page numbers to catalog start offsets. The first recorded
// offset for a page wins; later records for the same page are ignored, so a
// page keeps resolving to the same slice of the catalog for the life of the
// process. Losing the table is harmless: callers fall back to the global
// scan offset.
type Table struct {
	mu      sync.RWMutex
	offsets map[int]int
}

func NewTable() *Table {
	return &Table{offsets: make(map[int]int)}
}

// Record stores the start offset for a page unless one is already known.
func (t *Table) Record(page, offset int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.offsets[page]; !ok {
		t.offsets[page] = offset
	}
}

// Lookup returns the recorded start offset for a page, if any.
func (t *Table) Lookup(page int) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	offset, ok := t.offsets[page]
	return offset, ok
}

package limits

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/motortwin/motortwin/pkg/types"
)

// Table is a thread-safe limit table keyed by parameter.
// Each mutation assigns a fresh revision ID so clients can detect that the
// table changed underneath them.
type Table struct {
	mu       sync.RWMutex
	rows     []types.Limit
	index    map[types.Parameter]int
	revision string
	newID    func() string // injectable for deterministic tests
}

// New creates a Table holding initial. A nil or empty initial gives an empty
// table; callers wanting the factory rows pass Defaults().
func New(initial []types.Limit) *Table {
	t := &Table{newID: uuid.NewString}
	t.replace(initial)
	return t
}

// Get returns the row for p and whether one exists.
func (t *Table) Get(p types.Parameter) (types.Limit, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	i, ok := t.index[p]
	if !ok {
		return types.Limit{}, false
	}
	return t.rows[i], true
}

// Update replaces the whole table with newLimits. Rows are not merged with
// the previous contents: a parameter missing from newLimits is removed.
// When newLimits names a parameter twice, the last row wins.
func (t *Table) Update(newLimits []types.Limit) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replace(newLimits)
}

// Set inserts or replaces the single row for l.Parameter.
func (t *Table) Set(l types.Limit) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i, ok := t.index[l.Parameter]; ok {
		t.rows[i] = l
	} else {
		t.index[l.Parameter] = len(t.rows)
		t.rows = append(t.rows, l)
	}
	t.revision = t.newID()
}

// List returns a copy of the table. Known parameters come first in canonical
// order, followed by any unknown parameters in insertion order.
func (t *Table) List() []types.Limit {
	t.mu.RLock()
	out := make([]types.Limit, len(t.rows))
	copy(out, t.rows)
	t.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i].Parameter) < rank(out[j].Parameter)
	})
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Revision returns the ID assigned by the most recent mutation.
func (t *Table) Revision() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.revision
}

// replace rebuilds rows and index from src. Callers hold t.mu.
func (t *Table) replace(src []types.Limit) {
	rows := make([]types.Limit, 0, len(src))
	index := make(map[types.Parameter]int, len(src))
	for _, l := range src {
		if i, ok := index[l.Parameter]; ok {
			rows[i] = l
			continue
		}
		index[l.Parameter] = len(rows)
		rows = append(rows, l)
	}
	t.rows = rows
	t.index = index
	t.revision = t.newID()
}

// canonical maps each known parameter to its position in types.Parameters.
var canonical = func() map[types.Parameter]int {
	m := make(map[types.Parameter]int, len(types.Parameters))
	for i, p := range types.Parameters {
		m[p] = i
	}
	return m
}()

func rank(p types.Parameter) int {
	if i, ok := canonical[p]; ok {
		return i
	}
	return len(canonical)
}

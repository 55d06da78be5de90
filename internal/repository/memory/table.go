package memory

import "github.com/Additional-Code/stockledger/internal/repository"

// record is an entity that can copy itself, pointer fields included.
type record[T any] interface {
	Clone() T
}

// table holds one entity kind in insertion order with its own id sequence.
// Rows are cloned on the way in and out, so callers never share storage with it.
type table[T record[T]] struct {
	next  int64
	order []int64
	rows  map[int64]T
}

func newTable[T record[T]]() *table[T] {
	return &table[T]{next: 1, rows: make(map[int64]T)}
}

// allocate reserves the next id. Ids are never reused, even after delete.
func (t *table[T]) allocate() int64 {
	id := t.next
	t.next++
	return id
}

func (t *table[T]) insert(id int64, row T) {
	t.rows[id] = row.Clone()
	t.order = append(t.order, id)
}

func (t *table[T]) get(id int64) (T, bool) {
	row, ok := t.rows[id]
	if !ok {
		return row, false
	}
	return row.Clone(), true
}

func (t *table[T]) put(id int64, row T) {
	t.rows[id] = row.Clone()
}

func (t *table[T]) remove(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) lookup(id int64) (T, error) {
	row, ok := t.rows[id]
	if !ok {
		return row, repository.ErrNotFound
	}
	return row.Clone(), nil
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id].Clone())
	}
	return out
}

func (t *table[T]) filter(keep func(T) bool) []T {
	out := make([]T, 0)
	for _, id := range t.order {
		if row := t.rows[id]; keep(row) {
			out = append(out, row.Clone())
		}
	}
	return out
}

// exists reports whether any row other than skip matches.
func (t *table[T]) exists(skip int64, match func(T) bool) bool {
	for id, row := range t.rows {
		if id != skip && match(row) {
			return true
		}
	}
	return false
}

package memstore

import "sort"

// table filas por id en memoria; guarda copias para que los callers no compartan estado.
type table[T any] struct {
	rows map[int64]T
	next int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) insert(v T) int64 {
	t.next++
	t.rows[t.next] = v
	return t.next
}

func (t *table[T]) get(id int64) *T {
	v, ok := t.rows[id]
	if !ok {
		return nil
	}
	return &v
}

func (t *table[T]) put(id int64, v T) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = v
	return true
}

func (t *table[T]) remove(id int64) *T {
	v, ok := t.rows[id]
	if !ok {
		return nil
	}
	delete(t.rows, id)
	return &v
}

func (t *table[T]) find(match func(T) bool) *T {
	for _, id := range t.ids() {
		if v := t.rows[id]; match(v) {
			return &v
		}
	}
	return nil
}

// list filtra, ordena por id y pagina.
func (t *table[T]) list(match func(T) bool, limit, offset int) []*T {
	out := []*T{}
	for _, id := range t.ids() {
		v := t.rows[id]
		if match != nil && !match(v) {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, &v)
	}
	return out
}

func (t *table[T]) count(match func(T) bool) int {
	n := 0
	for _, v := range t.rows {
		if match(v) {
			n++
		}
	}
	return n
}

func (t *table[T]) ids() []int64 {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{rows: make(map[int64]T, len(t.rows)), next: t.next}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

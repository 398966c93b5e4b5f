package memstore

import "github.com/softlink/softlink-api/internal/domain"

// Las tablas se resuelven en cada llamada (pick) porque Run puede restaurar s.t.

func create[T any](s *Store, op string, pick func(*tables) *table[T], v *T, assign func(v *T, id int64)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(op); err != nil {
		return err
	}
	t := pick(&s.t)
	id := t.insert(*v)
	assign(v, id)
	t.put(id, *v)
	return nil
}

func getByID[T any](s *Store, pick func(*tables) *table[T], id int64) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pick(&s.t).get(id), nil
}

func update[T any](s *Store, op string, pick func(*tables) *table[T], id int64, v *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(op); err != nil {
		return err
	}
	if !pick(&s.t).put(id, *v) {
		return domain.ErrNotFound
	}
	return nil
}

func remove[T any](s *Store, op string, pick func(*tables) *table[T], id int64) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(op); err != nil {
		return nil, err
	}
	return pick(&s.t).remove(id), nil
}

func listWhere[T any](s *Store, pick func(*tables) *table[T], match func(T) bool, limit, offset int) ([]*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pick(&s.t).list(match, limit, offset), nil
}

package coordinator

import "container/list"

// lruIndex is the access-ordered suite cache: a doubly-linked list (front =
// most recently accessed) plus a name index. Lookup, touch and remove are
// O(1); eviction candidates come off the back without scanning.
type lruIndex struct {
	order *list.List // of *loadedSuite
	byKey map[string]*list.Element
}

func newLRUIndex() *lruIndex {
	return &lruIndex{order: list.New(), byKey: make(map[string]*list.Element)}
}

func (l *lruIndex) len() int { return l.order.Len() }

func (l *lruIndex) get(name string) (*loadedSuite, bool) {
	e, ok := l.byKey[name]
	if !ok {
		return nil, false
	}
	return e.Value.(*loadedSuite), true
}

func (l *lruIndex) insert(s *loadedSuite) {
	s.elem = l.order.PushFront(s)
	l.byKey[s.name] = s.elem
}

func (l *lruIndex) touch(s *loadedSuite) {
	l.order.MoveToFront(s.elem)
}

func (l *lruIndex) remove(s *loadedSuite) {
	l.order.Remove(s.elem)
	delete(l.byKey, s.name)
	s.elem = nil
}

// lruInactive returns the least-recently-accessed suite with no outstanding
// pins, or nil when every resident suite is pinned.
func (l *lruIndex) lruInactive() *loadedSuite {
	for e := l.order.Back(); e != nil; e = e.Prev() {
		s := e.Value.(*loadedSuite)
		if s.pins == 0 {
			return s
		}
	}
	return nil
}

// each calls fn for every resident suite, most recently accessed first.
func (l *lruIndex) each(fn func(*loadedSuite)) {
	for e := l.order.Front(); e != nil; e = e.Next() {
		fn(e.Value.(*loadedSuite))
	}
}

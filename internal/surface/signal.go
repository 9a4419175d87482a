package surface

// Signal is a parameterless notification with removable listeners. It
// stands in for the viewport resize event.
type Signal struct {
	listeners map[uint32]func()
	order     []uint32
	nextID    uint32
}

// OnResize implements Viewport.
func (s *Signal) OnResize(fn func()) (cancel func()) {
	return s.Subscribe(fn)
}

// Subscribe registers fn and returns a function that removes it. The
// returned function may be called any number of times.
func (s *Signal) Subscribe(fn func()) (cancel func()) {
	if s.listeners == nil {
		s.listeners = make(map[uint32]func())
	}
	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	s.order = append(s.order, id)

	return func() {
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i := range s.order {
			if s.order[i] == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Notify calls every listener in registration order.
func (s *Signal) Notify() {
	ids := make([]uint32, len(s.order))
	copy(ids, s.order)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn()
		}
	}
}

// Len returns the number of registered listeners.
func (s *Signal) Len() int { return len(s.listeners) }

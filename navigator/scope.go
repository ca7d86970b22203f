package navigator

// scope collects the teardown functions of one attach/catalog
// configuration. close runs them newest first and leaves the scope empty.
type scope struct {
	cleanups []func()
}

func (s *scope) add(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

func (s *scope) close() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

func (s *scope) len() int {
	return len(s.cleanups)
}

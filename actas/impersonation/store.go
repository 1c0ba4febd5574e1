package impersonation

// Store reads and writes the impersonation slot of one session. It holds no
// state of its own, so a Store is cheap to build per request.
type Store struct {
	sess Session
}

func NewStore(sess Session) *Store {
	return &Store{sess: sess}
}

// overwrites any previous record
func (s *Store) Set(r Record) {
	s.sess.Set(SessionKey, r)
}

// returns the current record or nil
func (s *Store) Get() *Record {
	if s == nil || s.sess == nil {
		return nil
	}

	v, ok := s.sess.Get(SessionKey)
	if !ok {
		return nil
	}

	switch r := v.(type) {
	case Record:
		return &r
	case *Record:
		if r == nil {
			return nil
		}
		cp := *r
		return &cp
	}

	return nil
}

// safe to call when nothing is set
func (s *Store) Clear() {
	s.sess.Delete(SessionKey)
}

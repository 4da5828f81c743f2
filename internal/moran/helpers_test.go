package moran

// scriptedRand replays a fixed sequence of draws. Each value must be below the
// bound passed to Int63n.
type scriptedRand struct {
	vals []int64
	n    int
}

func (s *scriptedRand) Int63n(bound int64) int64 {
	v := s.vals[s.n]
	s.n++
	if v >= bound {
		panic("scripted draw out of range")
	}
	return v
}

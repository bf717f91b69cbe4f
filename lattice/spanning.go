package lattice

// SpanningSet holds, for each canonical start heading, the endpoints accepted for it in the order
// they were discovered. A SpanningSet is never modified after it is built.
type SpanningSet struct {
	headings  []float64
	endpoints map[float64][]Endpoint
}

func newSpanningSet(headings []float64, endpoints [][]Endpoint) *SpanningSet {
	set := &SpanningSet{
		headings:  append([]float64(nil), headings...),
		endpoints: make(map[float64][]Endpoint, len(headings)),
	}
	for i, h := range headings {
		list := []Endpoint{}
		if i < len(endpoints) && endpoints[i] != nil {
			list = endpoints[i]
		}
		set.endpoints[h] = list
	}
	return set
}

// Headings returns the start headings in ascending order.
func (s *SpanningSet) Headings() []float64 {
	return append([]float64(nil), s.headings...)
}

// Endpoints returns a copy of the endpoints accepted for start heading h, or nil if h is not a
// start heading of the set.
func (s *SpanningSet) Endpoints(h float64) []Endpoint {
	list, ok := s.endpoints[h]
	if !ok {
		return nil
	}
	return append([]Endpoint{}, list...)
}

// Len returns the total number of endpoints across all start headings.
func (s *SpanningSet) Len() int {
	var n int
	for _, list := range s.endpoints {
		n += len(list)
	}
	return n
}

// ReflectToNinety maps endpoints found for start heading 0° onto start heading 90° by reflecting
// across the line y = x.
func ReflectToNinety(endpoints []Endpoint) []Endpoint {
	reflected := make([]Endpoint, 0, len(endpoints))
	for _, e := range endpoints {
		reflected = append(reflected, Endpoint{X: e.Y, Y: e.X, Heading: 90 - e.Heading})
	}
	return reflected
}

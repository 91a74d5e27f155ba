package trace

import "github.com/google/uuid"

// ShopTrace collects emitted events during one simulation run, in
// emission order. Appending is the only mutation.
type ShopTrace struct {
	RunID   string
	Records []Record
}

// New creates a ShopTrace ready for recording.
func New() *ShopTrace {
	return &ShopTrace{
		RunID:   uuid.NewString(),
		Records: make([]Record, 0),
	}
}

// Add appends one emitted event.
func (st *ShopTrace) Add(r Record) {
	st.Records = append(st.Records, r)
}

// OfKind returns all records of one kind, in emission order.
func (st *ShopTrace) OfKind(k Kind) []Record {
	var out []Record
	for _, r := range st.Records {
		if r.Kind == k {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the number of records of one kind.
func (st *ShopTrace) Count(k Kind) int {
	n := 0
	for _, r := range st.Records {
		if r.Kind == k {
			n++
		}
	}
	return n
}

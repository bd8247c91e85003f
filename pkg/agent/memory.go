package agent

// Record is one successful step kept in short-term memory.
type Record struct {
	Description string
	Display     string
	Raw         any
}

// Memory accumulates the successful steps of a single query, in order.
// It is not safe for concurrent use; each run owns its own instance.
type Memory struct {
	records []Record
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Add(r Record) { m.records = append(m.records, r) }

func (m *Memory) Len() int { return len(m.records) }

// Records returns a copy of the stored records in insertion order.
func (m *Memory) Records() []Record {
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

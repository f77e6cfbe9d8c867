package workflow

// Record is the unit of data flowing between steps: a flat mapping of named
// values with no schema imposed by the engine. Step actions consume one
// composed Record and produce another.
type Record map[string]any

// Clone returns a shallow copy of the record. A nil receiver yields an
// empty, non-nil record so callers can overlay onto it directly.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Overlay copies every key of other into r, overwriting existing keys.
// It returns r for chaining. Last write wins on collision, which is the
// merge policy for both input composition and aggregate output.
func (r Record) Overlay(other Record) Record {
	for k, v := range other {
		r[k] = v
	}
	return r
}

package dso

import "github.com/misiektw/dso2cs/binreader"

// FloatTable is an immutable, parse-order sequence of floats. v41 stores
// f64; older DSO generations store f32 (see Precision).
type FloatTable struct {
	values []float64
}

// Precision selects the on-disk float width for a DSO generation.
type Precision int

const (
	// Precision64 is the v41 layout: 8-byte IEEE-754 doubles.
	Precision64 Precision = iota
	// Precision32 is the pre-v41 layout: 4-byte IEEE-754 floats.
	Precision32
)

// ParseFloatTable reads count floats of the given precision from r.
func ParseFloatTable(r *binreader.Reader, count uint32, prec Precision) (*FloatTable, error) {
	t := &FloatTable{values: make([]float64, 0, count)}
	for i := uint32(0); i < count; i++ {
		if prec == Precision32 {
			v, err := r.UnpackF32(binreader.LittleEndian)
			if err != nil {
				return nil, err
			}
			t.values = append(t.values, float64(v))
		} else {
			v, err := r.UnpackF64(binreader.LittleEndian)
			if err != nil {
				return nil, err
			}
			t.values = append(t.values, v)
		}
	}
	return t, nil
}

// Get returns the float at logical index idx.
func (t *FloatTable) Get(idx int) (float64, error) {
	if idx < 0 || idx >= len(t.values) {
		return 0, &StringOffsetError{Offset: idx}
	}
	return t.values[idx], nil
}

// Len reports the number of floats in the table.
func (t *FloatTable) Len() int { return len(t.values) }

// Values returns the table contents in parse order.
func (t *FloatTable) Values() []float64 { return t.values }

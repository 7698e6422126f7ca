package stock

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ledger maps resource names to per-location counts for one category,
// preserving the order in which resources and locations were first recorded.
// Counts never go below zero; cells are materialized lazily on first use, so
// a missing key is equivalent to a count of zero.
type Ledger struct {
	resources []*resourceStock
}

type resourceStock struct {
	name  string
	cells []*cell
}

type cell struct {
	location string
	count    int
}

// Entry is one (resource, location, count) triple of a ledger.
type Entry struct {
	Resource string `json:"resource"`
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// Filter restricts Entries to exact resource and/or location matches.
// Empty fields match everything.
type Filter struct {
	Resource string
	Location string
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Empty reports whether the ledger holds no entries at all.
func (l *Ledger) Empty() bool {
	return l == nil || len(l.resources) == 0
}

// Count returns the current count for a cell, zero if it was never recorded.
func (l *Ledger) Count(resource, location string) int {
	if l == nil {
		return 0
	}
	for _, rs := range l.resources {
		if rs.name != resource {
			continue
		}
		for _, c := range rs.cells {
			if c.location == location {
				return c.count
			}
		}
	}
	return 0
}

// Apply mutates the cell addressed by the movement: an "entrada" adds the
// quantity, a "salida" subtracts it clamping at zero. The cell is created
// with a zero count first if it does not exist yet.
func (l *Ledger) Apply(m Movement) {
	c := l.materialize(m.Resource, m.Location)
	switch m.Direction {
	case In:
		c.count += m.Quantity
	case Out:
		c.count -= m.Quantity
		if c.count < 0 {
			c.count = 0
		}
	}
}

func (l *Ledger) materialize(resource, location string) *cell {
	var rs *resourceStock
	for _, r := range l.resources {
		if r.name == resource {
			rs = r
			break
		}
	}
	if rs == nil {
		rs = &resourceStock{name: resource}
		l.resources = append(l.resources, rs)
	}
	for _, c := range rs.cells {
		if c.location == location {
			return c
		}
	}
	c := &cell{location: location}
	rs.cells = append(rs.cells, c)
	return c
}

// Entries returns all (resource, location, count) triples matching the
// filter, resources in insertion order and locations in insertion order
// within each resource.
func (l *Ledger) Entries(f Filter) []Entry {
	if l == nil {
		return nil
	}
	var out []Entry
	for _, rs := range l.resources {
		if f.Resource != "" && rs.name != f.Resource {
			continue
		}
		for _, c := range rs.cells {
			if f.Location != "" && c.location != f.Location {
				continue
			}
			out = append(out, Entry{Resource: rs.name, Location: c.location, Count: c.count})
		}
	}
	return out
}

// MarshalJSON encodes the ledger as a nested JSON object
// {"resource": {"location": count}} keeping key insertion order.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rs := range l.resources {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rs.name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":{")
		for j, c := range rs.cells {
			if j > 0 {
				buf.WriteByte(',')
			}
			loc, err := json.Marshal(c.location)
			if err != nil {
				return nil, err
			}
			buf.Write(loc)
			fmt.Fprintf(&buf, ":%d", c.count)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the nested object form, preserving key order by
// walking the token stream instead of decoding into a map.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	l.resources = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("ledger: %w", err)
		}
		resource, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ledger: resource key is not a string")
		}
		rs := &resourceStock{name: resource}
		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("ledger: resource %q: %w", resource, err)
		}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("ledger: %w", err)
			}
			location, ok := tok.(string)
			if !ok {
				return fmt.Errorf("ledger: location key under %q is not a string", resource)
			}
			tok, err = dec.Token()
			if err != nil {
				return fmt.Errorf("ledger: %w", err)
			}
			num, ok := tok.(json.Number)
			if !ok {
				return fmt.Errorf("ledger: count for %q/%q is not a number", resource, location)
			}
			n, err := num.Int64()
			if err != nil {
				return fmt.Errorf("ledger: count for %q/%q is not an integer: %v", resource, location, err)
			}
			if n < 0 {
				return fmt.Errorf("ledger: negative count for %q/%q", resource, location)
			}
			rs.cells = append(rs.cells, &cell{location: location, count: int(n)})
		}
		if err := expectDelim(dec, '}'); err != nil {
			return fmt.Errorf("ledger: resource %q: %w", resource, err)
		}
		l.resources = append(l.resources, rs)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

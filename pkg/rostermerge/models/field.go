package models

import (
	"fmt"
	"strings"
)

// FieldGroup is one of the semantic buckets output columns are organized into.
type FieldGroup int

const (
	// Registration holds registration (immatriculation) numbers.
	Registration FieldGroup = iota
	// Name holds last and first names.
	Name
	// DayCount holds numbers of worked days.
	DayCount
	// Status holds the situation column.
	Status
)

// NumFieldGroups is the number of field groups.
const NumFieldGroups = 4

// FieldGroups lists every group in output order.
var FieldGroups = [NumFieldGroups]FieldGroup{Registration, Name, DayCount, Status}

var fieldGroupNames = [NumFieldGroups]string{"registration", "name", "dayCount", "status"}

func (g FieldGroup) String() string {
	if g < 0 || int(g) >= NumFieldGroups {
		return fmt.Sprintf("FieldGroup(%d)", int(g))
	}
	return fieldGroupNames[g]
}

// ParseFieldGroup parses a group name as produced by String (case-insensitive).
func ParseFieldGroup(s string) (FieldGroup, error) {
	for i, name := range fieldGroupNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return FieldGroup(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field group %q", s)
}

// MarshalText implements encoding.TextMarshaler so groups can key JSON maps.
func (g FieldGroup) MarshalText() ([]byte, error) {
	if g < 0 || int(g) >= NumFieldGroups {
		return nil, fmt.Errorf("invalid field group %d", int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *FieldGroup) UnmarshalText(b []byte) error {
	parsed, err := ParseFieldGroup(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// GroupSet is a set of field groups. A header cell may belong to several.
type GroupSet uint8

// Add returns the set with g included.
func (s GroupSet) Add(g FieldGroup) GroupSet {
	return s | 1<<uint(g)
}

// Has reports whether g is in the set.
func (s GroupSet) Has(g FieldGroup) bool {
	return s&(1<<uint(g)) != 0
}

// Empty reports whether the set has no groups.
func (s GroupSet) Empty() bool {
	return s == 0
}

// Groups returns the members in output order.
func (s GroupSet) Groups() []FieldGroup {
	var out []FieldGroup
	for _, g := range FieldGroups {
		if s.Has(g) {
			out = append(out, g)
		}
	}
	return out
}

func (s GroupSet) String() string {
	names := make([]string, 0, NumFieldGroups)
	for _, g := range s.Groups() {
		names = append(names, g.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// FieldCounts holds a column count per field group, indexed by FieldGroup.
type FieldCounts [NumFieldGroups]int

// Total returns the sum of all counts.
func (c FieldCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Max returns the element-wise maximum of c and o.
func (c FieldCounts) Max(o FieldCounts) FieldCounts {
	var out FieldCounts
	for i := range c {
		out[i] = max(c[i], o[i])
	}
	return out
}

// FieldLabels holds the header prefix used for each field group.
type FieldLabels [NumFieldGroups]string

// DefaultFieldLabels names output columns after the field groups.
var DefaultFieldLabels = FieldLabels{"registration", "name", "dayCount", "status"}

// LegacyFieldLabels reproduces the French column names of older exports.
var LegacyFieldLabels = FieldLabels{"immatricule", "nom", "nombre", "situation"}

// PhraseTable maps each field group to the header phrases that indicate it.
// Matching is case-insensitive substring search.
type PhraseTable map[FieldGroup][]string

// Clone returns a deep copy of the table.
func (t PhraseTable) Clone() PhraseTable {
	out := make(PhraseTable, len(t))
	for g, phrases := range t {
		out[g] = append([]string(nil), phrases...)
	}
	return out
}

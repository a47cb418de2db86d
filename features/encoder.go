package features

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// CanonicalValue is the form in which categorical values are compared:
// NFKC normalized, trimmed and case folded. "Nairobi", " nairobi" and
// "NAIROBI" are the same category.
func CanonicalValue(s string) string {
	// Casers carry state and are not safe for concurrent use.
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(s)))
}

// Vocabulary is the frozen set of known values for every categorical column.
// Values are stored canonicalized and sorted, so two fits over the same data
// produce the same one-hot layout.
type Vocabulary struct {
	columns [NumCategorical][]string
	offsets [NumCategorical]int
	lookup  [NumCategorical]map[string]int
	dim     int
}

// FitVocabulary collects the distinct non-empty values of every categorical
// column across rows.
func FitVocabulary(rows []Row) *Vocabulary {
	var columns [NumCategorical][]string
	for col := range NumCategorical {
		seen := make(map[string]struct{})
		for _, r := range rows {
			v := CanonicalValue(r.Categorical[col])
			if v == "" {
				continue
			}
			seen[v] = struct{}{}
		}
		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		slices.Sort(values)
		columns[col] = values
	}
	return newVocabulary(columns)
}

func newVocabulary(columns [NumCategorical][]string) *Vocabulary {
	v := &Vocabulary{columns: columns}
	offset := 0
	for col := range NumCategorical {
		v.offsets[col] = offset
		v.lookup[col] = make(map[string]int, len(columns[col]))
		for i, value := range columns[col] {
			v.lookup[col][value] = i
		}
		offset += len(columns[col])
	}
	v.dim = offset
	return v
}

// Dim returns the width of the categorical block.
func (v *Vocabulary) Dim() int {
	return v.dim
}

// Values returns the known values of a column.
func (v *Vocabulary) Values(col int) []string {
	return slices.Clone(v.columns[col])
}

// Contains reports whether value is a known category of col.
func (v *Vocabulary) Contains(col int, value string) bool {
	_, ok := v.lookup[col][CanonicalValue(value)]
	return ok
}

// Transform one-hot encodes the categorical columns of r. A value outside the
// vocabulary contributes an all-zero segment; its column name is returned in
// unknown so callers can log it.
func (v *Vocabulary) Transform(r Row) (block []float32, unknown []string) {
	block = make([]float32, v.dim)
	for col := range NumCategorical {
		value := CanonicalValue(r.Categorical[col])
		if value == "" {
			continue
		}
		i, ok := v.lookup[col][value]
		if !ok {
			unknown = append(unknown, CategoricalColumns[col])
			continue
		}
		block[v.offsets[col]+i] = 1
	}
	return block, unknown
}

// Package baseline loads the antenna-pair baseline-length table and
// derives the length ordering of correlation products.
package baseline

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/ska-sa/rfireport/pkg/dataset"
)

// Table maps an antenna-pair key (both input labels with their
// polarization suffixes stripped, concatenated) to the physical
// baseline separation in metres.
type Table map[string]float64

// LoadTable reads the baseline-length CSV: a header row of antenna-pair
// keys and exactly one data row of lengths.
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path) //#nosec G304 -- user-provided table
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	keys, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read baseline table header: %w", err)
	}
	values, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read baseline table lengths: %w", err)
	}
	if len(values) != len(keys) {
		return nil, fmt.Errorf("baseline table has %d lengths for %d columns", len(values), len(keys))
	}

	table := make(Table, len(keys))
	for i, key := range keys {
		if _, dup := table[key]; dup {
			return nil, fmt.Errorf("duplicate baseline column %q", key)
		}
		length, err := strconv.ParseFloat(values[i], 64)
		if err != nil {
			return nil, fmt.Errorf("baseline %q has malformed length %q", key, values[i])
		}
		table[key] = length
	}
	return table, nil
}

// PairKey derives the table key for a correlation product: the two
// input labels minus their polarization suffixes, concatenated.
func PairKey(product [2]string) string {
	a := product[0][:len(product[0])-1]
	b := product[1][:len(product[1])-1]
	return a + b
}

// Ordering returns the permutation that sorts the given correlation
// products ascending by baseline length, together with the sorted
// lengths. A product whose pair key is absent from the table is an
// error; no fallback length is substituted.
func Ordering(table Table, products [][2]string) ([]int, []float64, error) {
	lengths := make([]float64, len(products))
	for i, p := range products {
		key := PairKey(p)
		length, ok := table[key]
		if !ok {
			return nil, nil, fmt.Errorf("baseline %q not in length table", key)
		}
		lengths[i] = length
	}

	perm := make([]int, len(products))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return lengths[perm[i]] < lengths[perm[j]]
	})

	ordered := make([]float64, len(perm))
	for i, idx := range perm {
		ordered[i] = lengths[idx]
	}
	return perm, ordered, nil
}

// Select maps dataset product indices to their label pairs.
func Select(ds *dataset.Dataset, indices []int) [][2]string {
	products := make([][2]string, len(indices))
	for i, idx := range indices {
		products[i] = ds.CorrProducts()[idx]
	}
	return products
}

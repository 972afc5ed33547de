// Package browsers resolves browserslist-style queries against an embedded
// browser-usage snapshot and adapts the results for the compatibility
// checker.
//
// The resolver supports the query grammar subset packages rely on in
// practice: version comparisons ("chrome >= 120"), "last N versions",
// usage thresholds ("> 0.5%"), the "defaults" and "dead" keyword sets,
// "Firefox ESR", "unreleased versions", exact versions ("op_mini all"),
// and the "or"/"and"/"not" combinators.
package browsers

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ajxudir/pkgsupport/pkg/semverx"
	"github.com/ajxudir/pkgsupport/pkg/utils"
	"github.com/ajxudir/pkgsupport/pkg/verbose"
)

// defaultsExpansion is the canonical expansion of the "defaults" keyword.
const defaultsExpansion = "> 0.5%, last 2 versions, firefox esr, not dead"

var (
	lastVersionsRegex       = regexp.MustCompile(`^last (\d+) versions?$`)
	lastFamilyVersionsRegex = regexp.MustCompile(`^last (\d+) ([a-z_]+) versions?$`)
	unreleasedFamilyRegex   = regexp.MustCompile(`^unreleased ([a-z_]+) versions?$`)
	usageRegex              = regexp.MustCompile(`^([<>]=?)\s*(\d+(?:\.\d+)?)%$`)
	orSplitRegex            = regexp.MustCompile(`\s+or\s+`)
)

// Resolver resolves a list of browserslist queries into flat
// "family version" entries, ordered canonically.
//
// Implementations treat the query list as a single request; callers must not
// issue the same list more than once per decision.
type Resolver interface {
	// Resolve evaluates the queries and returns "family version" entries.
	//
	// Parameters:
	//   - queries: The ordered query list; commas inside a query separate
	//     sub-queries exactly like separate list entries
	//
	// Returns:
	//   - []string: Ordered "family version" entries
	//   - error: Returns an error for unknown queries, families, or versions
	Resolve(queries []string) ([]string, error)
}

// DataResolver is the default Resolver backed by the embedded dataset.
type DataResolver struct {
	data *dataset
}

// NewDataResolver creates a resolver over the embedded browser dataset.
//
// Returns:
//   - *DataResolver: The resolver
//   - error: Returns an error when the embedded dataset cannot be parsed
func NewDataResolver() (*DataResolver, error) {
	data, err := loadDataset()
	if err != nil {
		return nil, err
	}
	return &DataResolver{data: data}, nil
}

// selection tracks chosen version indices per family.
type selection map[string]map[int]struct{}

// add merges the other selection into s.
func (s selection) add(other selection) {
	for fam, indices := range other {
		if s[fam] == nil {
			s[fam] = make(map[int]struct{})
		}
		for idx := range indices {
			s[fam][idx] = struct{}{}
		}
	}
}

// subtract removes the other selection's entries from s.
func (s selection) subtract(other selection) {
	for fam, indices := range other {
		existing, ok := s[fam]
		if !ok {
			continue
		}
		for idx := range indices {
			delete(existing, idx)
		}
		if len(existing) == 0 {
			delete(s, fam)
		}
	}
}

// intersect keeps only entries present in both selections.
func (s selection) intersect(other selection) {
	for fam, indices := range s {
		otherIndices, ok := other[fam]
		if !ok {
			delete(s, fam)
			continue
		}
		for idx := range indices {
			if _, ok := otherIndices[idx]; !ok {
				delete(indices, idx)
			}
		}
		if len(indices) == 0 {
			delete(s, fam)
		}
	}
}

// Resolve evaluates the queries and returns "family version" entries.
//
// It performs the following operations:
//   - Splits every query on commas and "or" into sequential terms
//   - Folds the terms left to right: plain terms union, "not" terms
//     subtract, "and" parts within a term intersect
//   - Emits the selected versions in dataset family order, newest first
//
// Parameters:
//   - queries: The ordered query list
//
// Returns:
//   - []string: Ordered "family version" entries
//   - error: Returns an error for unknown queries, families, or versions
func (r *DataResolver) Resolve(queries []string) ([]string, error) {
	selected, err := r.fold(splitTerms(queries))
	if err != nil {
		return nil, err
	}

	return r.emit(selected), nil
}

// fold evaluates a term list into a selection.
//
// Parameters:
//   - terms: The sequential terms produced by splitTerms
//
// Returns:
//   - selection: The accumulated selection
//   - error: Returns an error when any term fails to evaluate
func (r *DataResolver) fold(terms []string) (selection, error) {
	acc := make(selection)

	for _, term := range terms {
		negate := false
		rest := term
		if strings.HasPrefix(strings.ToLower(rest), "not ") {
			negate = true
			rest = strings.TrimSpace(rest[4:])
		}

		set, err := r.evalTerm(rest)
		if err != nil {
			return nil, err
		}

		if negate {
			acc.subtract(set)
		} else {
			acc.add(set)
		}
	}

	return acc, nil
}

// evalTerm evaluates one term, handling "and" intersections.
//
// Parameters:
//   - term: A term without a leading "not"
//
// Returns:
//   - selection: The term's selection
//   - error: Returns an error when any atom fails to evaluate
func (r *DataResolver) evalTerm(term string) (selection, error) {
	parts := strings.Split(term, " and ")

	result, err := r.evalAtom(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, err
	}

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		negate := false
		if strings.HasPrefix(strings.ToLower(part), "not ") {
			negate = true
			part = strings.TrimSpace(part[4:])
		}

		set, err := r.evalAtom(part)
		if err != nil {
			return nil, err
		}

		if negate {
			result.subtract(set)
		} else {
			result.intersect(set)
		}
	}

	return result, nil
}

// evalAtom evaluates a single query atom.
//
// It performs the following operations:
//   - Matches keyword atoms: defaults, dead, firefox esr, unreleased versions
//   - Matches "last N [family] versions" atoms
//   - Matches usage-threshold atoms ("> 0.5%")
//   - Matches family comparison atoms ("chrome >= 120")
//   - Matches exact-version atoms ("op_mini all", "safari TP")
//
// Parameters:
//   - atom: The atom with combinators already stripped
//
// Returns:
//   - selection: The atom's selection
//   - error: Returns an error for unknown atoms, families, or versions
func (r *DataResolver) evalAtom(atom string) (selection, error) {
	lowered := strings.ToLower(strings.TrimSpace(atom))
	verbose.Tracef("resolver: evaluating atom %q", lowered)

	switch lowered {
	case "":
		return make(selection), nil
	case "defaults":
		return r.fold(splitOnCommas(defaultsExpansion))
	case "dead":
		return r.selectDead(), nil
	case "firefox esr":
		return r.selectESR()
	case "unreleased versions":
		return r.selectUnreleased(""), nil
	}

	if m := lastVersionsRegex.FindStringSubmatch(lowered); m != nil {
		n, _ := strconv.Atoi(m[1])
		return r.selectLast(n, ""), nil
	}
	if m := lastFamilyVersionsRegex.FindStringSubmatch(lowered); m != nil {
		n, _ := strconv.Atoi(m[1])
		fam := r.data.familyByName(m[2])
		if fam == nil {
			return nil, fmt.Errorf("unknown browser family %q", m[2])
		}
		return r.selectLast(n, m[2]), nil
	}
	if m := unreleasedFamilyRegex.FindStringSubmatch(lowered); m != nil {
		if r.data.familyByName(m[1]) == nil {
			return nil, fmt.Errorf("unknown browser family %q", m[1])
		}
		return r.selectUnreleased(m[1]), nil
	}
	if m := usageRegex.FindStringSubmatch(lowered); m != nil {
		threshold, _ := strconv.ParseFloat(m[2], 64)
		return r.selectUsage(m[1], threshold), nil
	}

	fields := strings.Fields(lowered)
	if len(fields) == 3 && isComparisonOp(fields[1]) {
		return r.selectComparison(fields[0], fields[1], fields[2])
	}
	if len(fields) == 2 {
		return r.selectExact(fields[0], strings.Fields(strings.TrimSpace(atom))[1])
	}

	return nil, fmt.Errorf("unknown browserslist query: %q", atom)
}

// selectDead selects every version of dead families.
func (r *DataResolver) selectDead() selection {
	out := make(selection)
	for _, fam := range r.data.Browsers {
		if !fam.Dead {
			continue
		}
		for idx := range fam.Versions {
			markSelected(out, fam.Family, idx)
		}
	}
	return out
}

// selectESR selects the firefox extended-support versions.
func (r *DataResolver) selectESR() (selection, error) {
	fam := r.data.familyByName("firefox")
	if fam == nil || len(fam.ESR) == 0 {
		return nil, fmt.Errorf("dataset has no firefox esr versions")
	}

	out := make(selection)
	for idx, rel := range fam.Versions {
		for _, esr := range fam.ESR {
			if rel.Version == esr {
				markSelected(out, fam.Family, idx)
			}
		}
	}
	return out, nil
}

// selectUnreleased selects unreleased versions, optionally for one family.
func (r *DataResolver) selectUnreleased(familyName string) selection {
	out := make(selection)
	for _, fam := range r.data.Browsers {
		if familyName != "" && fam.Family != familyName {
			continue
		}
		for idx, rel := range fam.Versions {
			if !rel.Released {
				markSelected(out, fam.Family, idx)
			}
		}
	}
	return out
}

// selectLast selects the newest n released versions, optionally for one family.
func (r *DataResolver) selectLast(n int, familyName string) selection {
	out := make(selection)
	for _, fam := range r.data.Browsers {
		if familyName != "" && fam.Family != familyName {
			continue
		}

		var releasedIdx []int
		for idx, rel := range fam.Versions {
			if rel.Released {
				releasedIdx = append(releasedIdx, idx)
			}
		}

		start := len(releasedIdx) - n
		if start < 0 {
			start = 0
		}
		for _, idx := range releasedIdx[start:] {
			markSelected(out, fam.Family, idx)
		}
	}
	return out
}

// selectUsage selects released versions by global usage share.
func (r *DataResolver) selectUsage(op string, threshold float64) selection {
	out := make(selection)
	for _, fam := range r.data.Browsers {
		for idx, rel := range fam.Versions {
			if !rel.Released {
				continue
			}
			if compareFloat(rel.Usage, op, threshold) {
				markSelected(out, fam.Family, idx)
			}
		}
	}
	return out
}

// selectComparison selects a family's released versions by version comparison.
//
// Span versions compare by their low bound; versions that cannot be coerced
// (op_mini "all", safari "TP") never match a comparison.
func (r *DataResolver) selectComparison(familyName, op, versionStr string) (selection, error) {
	fam := r.data.familyByName(familyName)
	if fam == nil {
		return nil, fmt.Errorf("unknown browser family %q", familyName)
	}

	pivot, ok := semverx.Default.Coerce(versionStr)
	if !ok {
		return nil, fmt.Errorf("invalid version %q in query", versionStr)
	}

	out := make(selection)
	for idx, rel := range fam.Versions {
		if !rel.Released {
			continue
		}
		low, ok := semverx.Default.Coerce(semverx.SplitSpan(rel.Version).Low)
		if !ok {
			continue
		}

		keep := false
		switch op {
		case ">":
			keep = low.GreaterThan(pivot)
		case ">=":
			keep = !low.LessThan(pivot)
		case "<":
			keep = low.LessThan(pivot)
		case "<=":
			keep = !low.GreaterThan(pivot)
		}
		if keep {
			markSelected(out, fam.Family, idx)
		}
	}
	return out, nil
}

// selectExact selects one family version by literal token.
func (r *DataResolver) selectExact(familyName, versionStr string) (selection, error) {
	fam := r.data.familyByName(familyName)
	if fam == nil {
		return nil, fmt.Errorf("unknown browser family %q", familyName)
	}

	out := make(selection)
	for idx, rel := range fam.Versions {
		if strings.EqualFold(rel.Version, versionStr) {
			markSelected(out, fam.Family, idx)
			return out, nil
		}
	}
	return nil, fmt.Errorf("unknown version %q of %s", versionStr, familyName)
}

// emit renders a selection as ordered "family version" entries.
//
// Families follow dataset order; versions within a family are emitted newest
// first, matching browserslist's stable output.
func (r *DataResolver) emit(selected selection) []string {
	var out []string
	for _, fam := range r.data.Browsers {
		indices, ok := selected[fam.Family]
		if !ok {
			continue
		}

		sorted := make([]int, 0, len(indices))
		for idx := range indices {
			sorted = append(sorted, idx)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

		for _, idx := range sorted {
			out = append(out, fam.Family+" "+fam.Versions[idx].Version)
		}
	}
	return out
}

// splitTerms flattens the query list into sequential terms.
//
// Commas and the "or" keyword both separate terms; they are equivalent in
// the browserslist grammar.
func splitTerms(queries []string) []string {
	var terms []string
	for _, query := range queries {
		for _, comma := range splitOnCommas(query) {
			for _, term := range orSplitRegex.Split(comma, -1) {
				term = strings.TrimSpace(term)
				if term != "" {
					terms = append(terms, term)
				}
			}
		}
	}
	return terms
}

// splitOnCommas splits a query on commas, trimming whitespace.
func splitOnCommas(query string) []string {
	return utils.TrimAndSplit(query, ",")
}

// markSelected records one family version index in a selection.
func markSelected(s selection, familyName string, idx int) {
	if s[familyName] == nil {
		s[familyName] = make(map[int]struct{})
	}
	s[familyName][idx] = struct{}{}
}

// compareFloat applies a comparison operator to usage values.
func compareFloat(value float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return value > threshold
	case ">=":
		return value >= threshold
	case "<":
		return value < threshold
	case "<=":
		return value <= threshold
	}
	return false
}

// isComparisonOp reports whether a token is a version comparison operator.
func isComparisonOp(token string) bool {
	switch token {
	case ">", ">=", "<", "<=":
		return true
	}
	return false
}

// Package semverx provides the version-range primitives used by the
// compatibility checker: loose version coercion, range infimum calculation,
// and upper-bound intersection checks.
//
// The operations are exposed through the Ops interface so the decision logic
// can be tested against deterministic fakes.
package semverx

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	modsemver "golang.org/x/mod/semver"

	"github.com/ajxudir/pkgsupport/pkg/verbose"
)

// versionLiteralRegex extracts plain version literals (1, 1.2, 1.2.3) from a
// range expression so candidate probing can be seeded from them.
var versionLiteralRegex = regexp.MustCompile(`\d+(?:\.\d+){0,2}`)

// Ops is the version-range primitive set consumed by the compatibility checker.
//
// Implementations must be safe for concurrent use. The default implementation
// is MastermindsOps; tests may substitute fakes.
type Ops interface {
	// Coerce converts a loose version string to a comparable version,
	// tolerating partial forms ("14" -> 14.0.0, "17.5" -> 17.5.0) and a
	// leading "v". The second result is false when the string cannot be
	// interpreted as a version (e.g. "all", "TP").
	Coerce(s string) (*semver.Version, bool)

	// RangeMin computes the lowest version matched by a range expression
	// (its infimum). The second result is false when the range cannot be
	// parsed or matches no probe-able version.
	RangeMin(rangeStr string) (*semver.Version, bool)

	// RangeAdmitsAbove reports whether the range has a nonempty intersection
	// with the open interval (limit, +inf), i.e. whether it admits any
	// version strictly greater than limit. The second result is false when
	// the range cannot be parsed.
	RangeAdmitsAbove(rangeStr string, limit *semver.Version) (bool, bool)
}

// Default is the Ops implementation used when callers do not inject one.
var Default Ops = MastermindsOps{}

// MastermindsOps implements Ops on top of Masterminds/semver constraints.
//
// Range infimum and upper-bound intersection are computed by probing
// candidate versions derived from the version literals appearing in the
// range expression: for every literal the probe set contains the literal
// itself plus its next patch, minor, and major increments. Every comparator
// the constraint grammar can produce has its boundary inside that set.
type MastermindsOps struct{}

// Coerce converts a loose version string to a comparable version.
//
// It performs the following operations:
//   - Trims whitespace and a leading "v" prefix
//   - Attempts a direct parse, which already tolerates 1- and 2-segment forms
//   - Falls back to zero-padding partial forms validated via x/mod semver
//
// Parameters:
//   - s: The loose version string (e.g., "14", "17.5", "v1.2.3")
//
// Returns:
//   - *semver.Version: The coerced version, or nil on failure
//   - bool: false when the string cannot be interpreted as a version
func (MastermindsOps) Coerce(s string) (*semver.Version, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "v")
	if cleaned == "" {
		return nil, false
	}

	if v, err := semver.NewVersion(cleaned); err == nil {
		return v, true
	}

	padded := canonicalPad(cleaned)
	if padded == "" {
		verbose.Tracef("Coerce: %q is not a version", s)
		return nil, false
	}

	v, err := semver.NewVersion(padded)
	if err != nil {
		return nil, false
	}
	return v, true
}

// RangeMin computes the infimum of a range expression.
//
// It performs the following operations:
//   - Parses the range expression into a constraint
//   - Builds a candidate set from 0.0.0 and the range's version literals
//     plus their patch/minor/major increments
//   - Returns the smallest candidate satisfying the constraint
//
// Parameters:
//   - rangeStr: The range expression (e.g., ">=18", "^1.2.3", "1.x")
//
// Returns:
//   - *semver.Version: The lowest matching version, or nil on failure
//   - bool: false when the range cannot be parsed or no candidate matches
func (o MastermindsOps) RangeMin(rangeStr string) (*semver.Version, bool) {
	constraint, err := semver.NewConstraint(rangeStr)
	if err != nil {
		verbose.Tracef("RangeMin: unparseable range %q: %v", rangeStr, err)
		return nil, false
	}

	candidates := o.candidates(rangeStr, nil)
	for _, c := range candidates {
		if constraint.Check(c) {
			verbose.Tracef("RangeMin: %q -> %s", rangeStr, c)
			return c, true
		}
	}

	return nil, false
}

// RangeAdmitsAbove reports whether a range admits any version above a limit.
//
// It performs the following operations:
//   - Parses the range expression into a constraint
//   - Builds a candidate set from the limit's increments and the range's
//     version literals plus their increments
//   - Checks whether any candidate strictly above the limit satisfies
//     the constraint
//
// Parameters:
//   - rangeStr: The range expression (e.g., ">=18", "^14")
//   - limit: The cap; versions strictly greater count as "above"
//
// Returns:
//   - bool: true when the range admits some version above the limit
//   - bool: false (second result) when the range cannot be parsed
func (o MastermindsOps) RangeAdmitsAbove(rangeStr string, limit *semver.Version) (bool, bool) {
	constraint, err := semver.NewConstraint(rangeStr)
	if err != nil {
		verbose.Tracef("RangeAdmitsAbove: unparseable range %q: %v", rangeStr, err)
		return false, false
	}

	for _, c := range o.candidates(rangeStr, limit) {
		if c.GreaterThan(limit) && constraint.Check(c) {
			verbose.Tracef("RangeAdmitsAbove: %q admits %s above %s", rangeStr, c, limit)
			return true, true
		}
	}

	return false, true
}

// candidates builds the sorted probe set for a range expression.
//
// The set seeds from 0.0.0, every version literal in the expression, and the
// optional extra version, each expanded with its next patch, minor, and major
// increments.
//
// Parameters:
//   - rangeStr: The range expression to extract literals from
//   - extra: An additional seed version, may be nil
//
// Returns:
//   - []*semver.Version: Deduplicated candidates in ascending order
func (o MastermindsOps) candidates(rangeStr string, extra *semver.Version) []*semver.Version {
	seeds := []*semver.Version{semver.New(0, 0, 0, "", "")}

	for _, literal := range versionLiteralRegex.FindAllString(rangeStr, -1) {
		if v, ok := o.Coerce(literal); ok {
			seeds = append(seeds, v)
		}
	}
	if extra != nil {
		seeds = append(seeds, extra)
	}

	seen := make(map[string]struct{})
	var out []*semver.Version
	add := func(v semver.Version) {
		key := v.String()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		copied := v
		out = append(out, &copied)
	}

	for _, seed := range seeds {
		add(*seed)
		add(seed.IncPatch())
		add(seed.IncMinor())
		add(seed.IncMajor())
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].LessThan(out[j])
	})

	return out
}

// canonicalPad zero-pads a partial version using x/mod semver validation.
//
// It appends ".0" segments until the string becomes valid semver, then
// returns the canonical form without the "v" prefix. Strings that never
// validate yield "".
//
// Parameters:
//   - cleaned: The version string with whitespace and "v" prefix removed
//
// Returns:
//   - string: The padded canonical version, or "" when not a version
func canonicalPad(cleaned string) string {
	parts := strings.Split(cleaned, ".")
	for len(parts) > 0 && len(parts) <= 3 {
		candidate := "v" + strings.Join(parts, ".")
		if modsemver.IsValid(candidate) {
			return strings.TrimPrefix(modsemver.Canonical(candidate), "v")
		}
		parts = append(parts, "0")
	}
	return ""
}

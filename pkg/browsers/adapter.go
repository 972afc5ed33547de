package browsers

import (
	"strings"

	"github.com/ajxudir/pkgsupport/pkg/manifest"
	"github.com/ajxudir/pkgsupport/pkg/verbose"
	"github.com/ajxudir/pkgsupport/pkg/warnings"
)

// ResolveTargets resolves a manifest's browserslist field into a mapping from
// browser family to its targeted version tokens.
//
// It performs the following operations:
//   - Surfaces the format error for rejected browserslist shapes
//   - Returns an empty mapping when the field is absent or normalizes to an
//     empty query list, without consulting the resolver
//   - Delegates the query list to the resolver in a single call
//   - Splits each "family version" entry on the first space and folds it
//     into the mapping, preserving resolver order per family
//   - Skips entries without a space as non-fatal resolver noise
//
// Parameters:
//   - field: The manifest's dispatched browserslist field
//   - r: The query resolver to delegate to
//
// Returns:
//   - map[string][]string: Version tokens per family; empty when untargeted
//   - error: The format error for invalid shapes, or a resolver error
func ResolveTargets(field manifest.BrowserslistField, r Resolver) (map[string][]string, error) {
	if err := field.FormatError(); err != nil {
		return nil, err
	}

	queries := normalizeQueries(field)
	if len(queries) == 0 {
		return map[string][]string{}, nil
	}

	entries, err := r.Resolve(queries)
	if err != nil {
		return nil, err
	}

	targets := make(map[string][]string)
	for _, entry := range entries {
		idx := strings.Index(entry, " ")
		if idx < 0 {
			warnings.Warnf("skipping malformed resolver entry %q\n", entry)
			continue
		}
		fam := entry[:idx]
		targets[fam] = append(targets[fam], entry[idx+1:])
	}

	verbose.Debugf("Resolved %d queries into %d browser families", len(queries), len(targets))

	return targets, nil
}

// normalizeQueries extracts the non-empty query list from a field.
//
// Parameters:
//   - field: The dispatched browserslist field
//
// Returns:
//   - []string: The queries to resolve; nil when the field targets nothing
func normalizeQueries(field manifest.BrowserslistField) []string {
	if field.Kind == manifest.BrowserslistAbsent {
		return nil
	}

	var out []string
	for _, q := range field.Queries {
		if strings.TrimSpace(q) != "" {
			out = append(out, q)
		}
	}
	return out
}

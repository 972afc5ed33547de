package compat

import (
	"fmt"
	"strings"

	"github.com/ajxudir/pkgsupport/pkg/browsers"
	"github.com/ajxudir/pkgsupport/pkg/manifest"
	"github.com/ajxudir/pkgsupport/pkg/semverx"
	"github.com/ajxudir/pkgsupport/pkg/verbose"
)

// techPreviewQuery resolves the latest stable safari version, used as the
// comparable stand-in for the "TP" marker. The safari family is fixed here;
// no other preview channel gets this treatment.
const techPreviewQuery = "last 1 safari version"

// Checker evaluates requirement sets against manifests.
//
// The version-range primitives and the browser query resolver are injected
// so the decision logic can be tested against deterministic fakes. A Checker
// is stateless across calls; every Satisfies/Explain invocation is a pure
// function of its inputs.
type Checker struct {
	ops      semverx.Ops
	resolver browsers.Resolver
}

// New creates a Checker wired to the default primitives: Masterminds-backed
// version operations and the embedded-dataset query resolver.
//
// Returns:
//   - *Checker: The checker
//   - error: Returns an error when the embedded browser dataset is unusable
func New() (*Checker, error) {
	resolver, err := browsers.NewDataResolver()
	if err != nil {
		return nil, err
	}
	return NewChecker(semverx.Default, resolver), nil
}

// NewChecker creates a Checker with explicit collaborators.
//
// Parameters:
//   - ops: The version-range primitive set
//   - resolver: The browser query resolver
//
// Returns:
//   - *Checker: The checker
func NewChecker(ops semverx.Ops, resolver browsers.Resolver) *Checker {
	return &Checker{ops: ops, resolver: resolver}
}

// evaluation carries the per-call state: lazily resolved browser targets and
// the memoized technology-preview substitute.
type evaluation struct {
	checker  *Checker
	manifest *manifest.Manifest

	targets         map[string][]string
	targetsResolved bool

	tpVersion  string
	tpResolved bool
}

// Satisfies reports whether the manifest's declared platform support covers
// every requirement in the set.
//
// It performs the following operations:
//   - Returns true for an empty requirement list without inspecting the manifest
//   - Resolves browser targets once, on the first bounded requirement
//   - Evaluates requirements in order and short-circuits on the first violation
//
// Parameters:
//   - m: The parsed package manifest
//   - set: The ordered requirement set
//
// Returns:
//   - bool: true when every requirement is satisfied
//   - error: The browserslist format error or a resolver error; a plain
//     "no" verdict is never an error
func (c *Checker) Satisfies(m *manifest.Manifest, set RequirementSet) (bool, error) {
	if len(set.Requirements) == 0 {
		return true, nil
	}

	eval := &evaluation{checker: c, manifest: m}

	for _, req := range set.Requirements {
		verdict, err := eval.evalRequirement(req)
		if err != nil {
			return false, err
		}
		if !verdict.Satisfied {
			verbose.Debugf("Requirement %q failed: %s", req.Engine, verdict.Detail)
			return false, nil
		}
	}

	return true, nil
}

// Explain evaluates every requirement and returns per-requirement verdicts.
//
// Unlike Satisfies it does not stop at the first violation, so the report
// covers the whole requirement set. The overall result is the AND of all
// verdicts.
//
// Parameters:
//   - m: The parsed package manifest
//   - set: The ordered requirement set
//
// Returns:
//   - []Verdict: One verdict per requirement, in requirement order
//   - bool: true when every requirement is satisfied
//   - error: The browserslist format error or a resolver error
func (c *Checker) Explain(m *manifest.Manifest, set RequirementSet) ([]Verdict, bool, error) {
	eval := &evaluation{checker: c, manifest: m}

	verdicts := make([]Verdict, 0, len(set.Requirements))
	all := true

	for _, req := range set.Requirements {
		verdict, err := eval.evalRequirement(req)
		if err != nil {
			return nil, false, err
		}
		verdicts = append(verdicts, verdict)
		if !verdict.Satisfied {
			all = false
		}
	}

	return verdicts, all, nil
}

// evalRequirement evaluates one requirement against the manifest.
//
// It performs the following operations:
//   - Skips requirements with no bounds
//   - Applies the open-world rule when neither evidence source targets the
//     platform
//   - Checks the declared engines range against both bounds
//   - Checks every resolved browser version token against both bounds
//
// Parameters:
//   - req: The requirement to evaluate
//
// Returns:
//   - Verdict: The outcome with evidence source and detail
//   - error: A lazily surfaced format or resolver error
func (e *evaluation) evalRequirement(req Requirement) (Verdict, error) {
	if !req.IsBounded() {
		return Verdict{Engine: req.Engine, Satisfied: true, Evidence: EvidenceNone, Detail: "no bounds requested"}, nil
	}

	targets, err := e.browserTargets()
	if err != nil {
		return Verdict{}, err
	}

	engineRange, hasRange := e.manifest.EngineRange(req.Engine)
	browserVersions, hasBrowsers := targets[req.Engine]

	if !hasRange && !hasBrowsers {
		return Verdict{
			Engine:    req.Engine,
			Satisfied: true,
			Evidence:  EvidenceNone,
			Detail:    "platform untargeted by the package",
		}, nil
	}

	if hasRange {
		if detail, ok := e.checkEngineRange(req, engineRange); !ok {
			return Verdict{Engine: req.Engine, Satisfied: false, Evidence: EvidenceEngines, Detail: detail}, nil
		}
	}

	if hasBrowsers {
		detail, ok, err := e.checkBrowserVersions(req, browserVersions)
		if err != nil {
			return Verdict{}, err
		}
		if !ok {
			return Verdict{Engine: req.Engine, Satisfied: false, Evidence: EvidenceBrowsers, Detail: detail}, nil
		}
	}

	evidence := EvidenceEngines
	if hasBrowsers && !hasRange {
		evidence = EvidenceBrowsers
	}

	return Verdict{Engine: req.Engine, Satisfied: true, Evidence: evidence, Detail: "declared support covers the requirement"}, nil
}

// checkEngineRange checks the declared engines range against the
// requirement's bounds.
//
// Both checks fail closed: a range or bound that cannot be interpreted
// cannot prove the requirement and therefore fails it.
//
// Parameters:
//   - req: The requirement being evaluated
//   - engineRange: The declared range expression
//
// Returns:
//   - string: A failure detail, empty on success
//   - bool: true when both bounds pass
func (e *evaluation) checkEngineRange(req Requirement, engineRange string) (string, bool) {
	ops := e.checker.ops

	if req.MinVersion != "" {
		min, ok := ops.Coerce(req.MinVersion)
		if !ok {
			return fmt.Sprintf("minimum %q is not a version", req.MinVersion), false
		}
		infimum, ok := ops.RangeMin(engineRange)
		if !ok {
			return fmt.Sprintf("cannot determine the lowest version of range %q", engineRange), false
		}
		if infimum.LessThan(min) {
			return fmt.Sprintf("range %q admits %s, below required minimum %s", engineRange, infimum, min), false
		}
	}

	if req.MaxVersion != "" {
		max, ok := ops.Coerce(req.MaxVersion)
		if !ok {
			return fmt.Sprintf("maximum %q is not a version", req.MaxVersion), false
		}
		admits, parsed := ops.RangeAdmitsAbove(engineRange, max)
		if !parsed {
			return fmt.Sprintf("cannot interpret range %q", engineRange), false
		}
		if admits {
			return fmt.Sprintf("range %q admits versions above maximum %s", engineRange, max), false
		}
	}

	return "", true
}

// checkBrowserVersions checks every resolved browser version token against
// the requirement's bounds.
//
// It performs the following operations:
//   - Substitutes the latest stable safari version for the "TP" marker,
//     skipping the token when the substitute cannot be resolved
//   - Splits span tokens into low/high bounds
//   - Compares the low bound against the minimum and the high bound against
//     the maximum, failing closed on uncoercible values
//
// Parameters:
//   - req: The requirement being evaluated
//   - versions: The resolved version tokens for the requirement's platform
//
// Returns:
//   - string: A failure detail, empty on success
//   - bool: true when every token passes
//   - error: A resolver error from the technology-preview lookup
func (e *evaluation) checkBrowserVersions(req Requirement, versions []string) (string, bool, error) {
	ops := e.checker.ops

	for _, token := range versions {
		effective := token
		if token == semverx.TechPreviewToken {
			substitute, ok, err := e.techPreview()
			if err != nil {
				return "", false, err
			}
			if !ok {
				verbose.Tracef("Skipping token %q: no stable safari version resolved", token)
				continue
			}
			effective = substitute
		}

		span := semverx.SplitSpan(effective)

		if req.MinVersion != "" {
			min, ok := ops.Coerce(req.MinVersion)
			if !ok {
				return fmt.Sprintf("minimum %q is not a version", req.MinVersion), false, nil
			}
			low, ok := ops.Coerce(span.Low)
			if !ok {
				return fmt.Sprintf("targeted version %q is not comparable", token), false, nil
			}
			if low.LessThan(min) {
				return fmt.Sprintf("targets version %s, below required minimum %s", token, min), false, nil
			}
		}

		if req.MaxVersion != "" {
			max, ok := ops.Coerce(req.MaxVersion)
			if !ok {
				return fmt.Sprintf("maximum %q is not a version", req.MaxVersion), false, nil
			}
			high, ok := ops.Coerce(span.High)
			if !ok {
				return fmt.Sprintf("targeted version %q is not comparable", token), false, nil
			}
			if high.GreaterThan(max) {
				return fmt.Sprintf("targets version %s, above required maximum %s", token, max), false, nil
			}
		}
	}

	return "", true, nil
}

// browserTargets resolves the manifest's browser targets once per evaluation.
//
// Returns:
//   - map[string][]string: Version tokens per family
//   - error: The browserslist format error or a resolver error
func (e *evaluation) browserTargets() (map[string][]string, error) {
	if e.targetsResolved {
		return e.targets, nil
	}

	targets, err := browsers.ResolveTargets(e.manifest.Browserslist, e.checker.resolver)
	if err != nil {
		return nil, err
	}

	e.targets = targets
	e.targetsResolved = true
	return targets, nil
}

// techPreview resolves the comparable substitute for the "TP" marker once
// per evaluation.
//
// Returns:
//   - string: The latest stable safari version token
//   - bool: false when the lookup yields no usable entry
//   - error: A resolver error
func (e *evaluation) techPreview() (string, bool, error) {
	if e.tpResolved {
		return e.tpVersion, e.tpVersion != "", nil
	}

	entries, err := e.checker.resolver.Resolve([]string{techPreviewQuery})
	if err != nil {
		return "", false, fmt.Errorf("resolving safari technology preview substitute: %w", err)
	}

	e.tpResolved = true
	for _, entry := range entries {
		if idx := strings.Index(entry, " "); idx >= 0 {
			e.tpVersion = entry[idx+1:]
			return e.tpVersion, true, nil
		}
	}

	return "", false, nil
}

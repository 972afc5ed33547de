// Package compat decides whether a package's declared platform support
// (engines ranges and resolved browserslist targets) covers a caller's
// per-engine minimum/maximum version requirements.
package compat

// Requirement is one caller-supplied version bound for a named platform.
//
// Fields:
//   - Engine: The platform name (e.g., "node", "chrome", "safari")
//   - MinVersion: Optional lower bound; empty means unbounded below
//   - MaxVersion: Optional upper bound; empty means unbounded above
type Requirement struct {
	Engine     string `json:"engine" yaml:"engine"`
	MinVersion string `json:"min_version,omitempty" yaml:"min,omitempty"`
	MaxVersion string `json:"max_version,omitempty" yaml:"max,omitempty"`
}

// IsBounded reports whether the requirement carries at least one bound.
//
// A requirement with neither bound is vacuously satisfied and is never
// evaluated further.
//
// Returns:
//   - bool: true when MinVersion or MaxVersion is set
func (r Requirement) IsBounded() bool {
	return r.MinVersion != "" || r.MaxVersion != ""
}

// RequirementSet is an ordered list of requirements combined by logical AND.
//
// Fields:
//   - Requirements: Requirements evaluated left to right with short-circuit
type RequirementSet struct {
	Requirements []Requirement `json:"requirements" yaml:"requirements"`
}

// Evidence names which declaration source decided a requirement.
type Evidence string

const (
	// EvidenceNone means the platform was untargeted (open-world pass) or
	// the requirement carried no bounds.
	EvidenceNone Evidence = "none"

	// EvidenceEngines means the engines range decided the requirement.
	EvidenceEngines Evidence = "engines"

	// EvidenceBrowsers means resolved browser versions decided the requirement.
	EvidenceBrowsers Evidence = "browserslist"
)

// Verdict is the per-requirement outcome produced by Explain.
//
// Fields:
//   - Engine: The requirement's platform name
//   - Satisfied: Whether the requirement passed
//   - Evidence: Which declaration source decided the outcome
//   - Detail: A human-readable explanation of the outcome
type Verdict struct {
	Engine    string   `json:"engine"`
	Satisfied bool     `json:"satisfied"`
	Evidence  Evidence `json:"evidence"`
	Detail    string   `json:"detail"`
}

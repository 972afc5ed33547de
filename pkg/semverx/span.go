package semverx

import "strings"

// TechPreviewToken is the marker browserslist emits for Safari Technology
// Preview. It is not a comparable version; callers substitute the latest
// stable safari version before comparing.
const TechPreviewToken = "TP"

// Span is a version token interpreted as a low/high pair.
//
// Browser datasets emit tokens like "17.5-17.6" for grouped releases; a
// plain token spans itself.
//
// Fields:
//   - Low: The lower bound segment of the token
//   - High: The upper bound segment of the token
type Span struct {
	Low  string
	High string
}

// SplitSpan interprets a version token as a low/high span.
//
// It performs the following operations:
//   - Splits the token on "-"
//   - Uses the first segment as the low bound
//   - Uses the last segment as the high bound
//   - Returns the token itself for both bounds when no hyphen is present
//
// Parameters:
//   - token: The raw version token (e.g., "120", "17.5-17.6")
//
// Returns:
//   - Span: The low/high interpretation of the token
func SplitSpan(token string) Span {
	parts := strings.Split(token, "-")
	if len(parts) == 1 {
		return Span{Low: token, High: token}
	}
	return Span{Low: parts[0], High: parts[len(parts)-1]}
}

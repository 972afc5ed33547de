package browsers

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/browsers.json
var datasetJSON []byte

// release is one dataset entry for a browser family.
//
// Fields:
//   - Version: The version token (plain "139", span "17.5-17.6", or marker "TP"/"all")
//   - Usage: Global usage share in percent
//   - Released: Whether the version has shipped; unreleased versions are
//     excluded from "last N versions" and usage queries
type release struct {
	Version  string  `json:"version"`
	Usage    float64 `json:"usage"`
	Released bool    `json:"released"`
}

// family is one browser family with its ordered release history.
//
// Fields:
//   - Family: The canonical lowercase family name (e.g., "chrome", "ios_saf")
//   - Dead: Whether the family no longer receives official support
//   - Versions: Releases ordered oldest to newest, unreleased entries last
//   - ESR: Extended-support versions, only populated for firefox
type family struct {
	Family   string    `json:"family"`
	Dead     bool      `json:"dead"`
	Versions []release `json:"versions"`
	ESR      []string  `json:"esr"`
}

// dataset is the embedded browser-usage snapshot queries resolve against.
//
// Fields:
//   - Updated: The snapshot date, informational only
//   - Browsers: Families in canonical output order
type dataset struct {
	Updated  string   `json:"updated"`
	Browsers []family `json:"browsers"`
}

var (
	loadOnce    sync.Once
	loadedData  *dataset
	loadFailure error
)

// loadDataset parses the embedded dataset once and caches the result.
//
// Returns:
//   - *dataset: The parsed dataset
//   - error: Returns an error when the embedded JSON is malformed
func loadDataset() (*dataset, error) {
	loadOnce.Do(func() {
		var d dataset
		if err := json.Unmarshal(datasetJSON, &d); err != nil {
			loadFailure = fmt.Errorf("invalid embedded browser dataset: %w", err)
			return
		}
		loadedData = &d
	})
	return loadedData, loadFailure
}

// familyByName finds a family by its canonical name.
//
// Parameters:
//   - name: The lowercase family name
//
// Returns:
//   - *family: The matching family, or nil when unknown
func (d *dataset) familyByName(name string) *family {
	for i := range d.Browsers {
		if d.Browsers[i].Family == name {
			return &d.Browsers[i]
		}
	}
	return nil
}

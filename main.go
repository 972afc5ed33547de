// Command pkgsupport checks whether a package's declared platform support
// satisfies per-engine version requirements.
package main

import "github.com/ajxudir/pkgsupport/cmd"

func main() {
	cmd.Execute()
}

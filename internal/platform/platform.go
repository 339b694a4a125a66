// Package platform lists the build targets tracked in the CHANGELOG status table.
// Each platform has a column name (as shown in the table header) and the
// identifier the test runner prints for it in combined_test_output.log.
package platform

import "fmt"

// JS is the column name of the npm/JS build.
const JS = "js"

// Platform describes one build target.
type Platform struct {
	// Column is the CHANGELOG table header for this platform (e.g. "win-x64").
	Column string
	// LogID is the identifier used by the test runner (e.g. "win32-x64").
	LogID string
	// Binary is true for the native binary builds, false for the npm package.
	Binary bool
}

// all holds the platforms in table column order.
var all = []Platform{
	{Column: "js", LogID: "js"},
	{Column: "mac-arm64", LogID: "darwin-arm64", Binary: true},
	{Column: "mac-x64", LogID: "darwin-x64", Binary: true},
	{Column: "linux-arm64", LogID: "linux-arm64", Binary: true},
	{Column: "linux-x64", LogID: "linux-x64", Binary: true},
	{Column: "win-x64", LogID: "win32-x64", Binary: true},
	{Column: "win-arm64", LogID: "win32-arm64", Binary: true},
}

// All returns every platform in CHANGELOG column order.
// The returned slice is a copy and may be modified by the caller.
func All() []Platform {
	out := make([]Platform, len(all))
	copy(out, all)
	return out
}

// Columns returns the column names in table order.
func Columns() []string {
	cols := make([]string, len(all))
	for i, p := range all {
		cols[i] = p.Column
	}
	return cols
}

// Lookup finds a platform by its column name or its log identifier.
func Lookup(name string) (Platform, error) {
	for _, p := range all {
		if p.Column == name || p.LogID == name {
			return p, nil
		}
	}
	return Platform{}, fmt.Errorf("unknown platform %q (available: %v)", name, Columns())
}

// VersionFor picks the version relevant to the platform: the JS version for
// the npm build and the binary version for everything else.
func (p Platform) VersionFor(jsVersion, binaryVersion string) string {
	if p.Binary {
		return binaryVersion
	}
	return jsVersion
}

func (p Platform) String() string {
	return p.Column
}

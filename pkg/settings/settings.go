// Package settings holds build metadata and the per-run options shared by the
// bondpick CLI and the TUI.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "bondpick"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// CatalogSource describes where the instrument catalog comes from.
// An empty Path means the compiled-in dataset.
type CatalogSource struct {
	Path  string
	Where string
}

// Run holds configuration settings for a single execution of the application.
type Run struct {
	MinLogLevel   int8
	CatalogSource CatalogSource
	ConfigPath    string
	Output        string
	Interactive   bool
	NoColor       bool
}

// NewCliParams returns the defaults used when bondpick is started from the CLI.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Output:      "table",
	}
}

// Embedded reports whether the run uses the compiled-in catalog.
func (r *Run) Embedded() bool {
	return r == nil || r.CatalogSource.Path == ""
}

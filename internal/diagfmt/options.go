// Package diagfmt renders diagnostics for terminals and tools.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// Style is the --display-style value.
type Style uint8

const (
	StyleRich Style = iota
	StyleQuiet
	StyleJSON
	StyleSarif
)

var styleNames = map[string]Style{
	"rich":  StyleRich,
	"quiet": StyleQuiet,
	"json":  StyleJSON,
	"sarif": StyleSarif,
}

// ParseStyle accepts rich, quiet, json and sarif.
func ParseStyle(s string) (Style, bool) {
	st, ok := styleNames[s]
	return st, ok
}

func (s Style) String() string {
	for name, st := range styleNames {
		if st == s {
			return name
		}
	}
	return "unknown"
}

// PrettyOpts configures the rich renderer.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	ShowFixes bool // печатать превью правок под диагностикой
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeFixes     bool
	IncludePreviews  bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}

func formatPath(mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

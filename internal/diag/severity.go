package diag

// Severity defines the importance of a diagnostic.
// The zero value is SevAllow: a diagnostic that is not reported at all.
type Severity uint8

const (
	// SevAllow marks a rule or diagnostic as suppressed.
	SevAllow Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevAllow:
		return "allow"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

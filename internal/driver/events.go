package driver

// EventKind reports the progress of one file.
type EventKind int

const (
	// FileStarted is sent before a file is read.
	FileStarted EventKind = iota
	FileFinished
)

// Event describes a file boundary during Check.
type Event struct {
	Kind        EventKind
	Path        string
	Done        int // files finished so far, this one included
	Total       int
	Diagnostics int
	Cached      bool
}

// Observer receives events from worker goroutines; it must be safe for
// concurrent use.
type Observer func(Event)

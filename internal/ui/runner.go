package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"moonlint/internal/driver"
)

// Run starts the progress display on out and returns an observer for
// driver.Check plus a function that closes the stream and waits for the
// program to exit.
func Run(title string, files []string, out io.Writer) (driver.Observer, func() error) {
	events := make(chan driver.Event, 256)
	program := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out))
	errCh := make(chan error, 1)
	go func() {
		_, err := program.Run()
		errCh <- err
		// программа могла выйти раньше (ctrl+c), воркеры не должны зависнуть
		for range events {
		}
	}()

	observer := func(ev driver.Event) { events <- ev }
	wait := func() error {
		close(events)
		return <-errCh
	}
	return observer, wait
}

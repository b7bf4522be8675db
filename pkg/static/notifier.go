package static

import (
	"fmt"
	"io"
)

// Notifier prints the human facing lifecycle messages.
//
//go:generate mockgen -source notifier.go -destination mock/notifier.go
type Notifier interface {
	Started(url string)
	Stopped()
}

type ConsoleNotifier struct {
	w io.Writer
}

var _ Notifier = (*ConsoleNotifier)(nil)

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Started(url string) {
	fmt.Fprintf(n.w, "Server running at %s\n", url)
	fmt.Fprintln(n.w, "Press Ctrl+C to stop the server")
}

func (n *ConsoleNotifier) Stopped() {
	fmt.Fprintln(n.w, "Server stopped.")
}

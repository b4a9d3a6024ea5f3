package screen

import (
	"fmt"
	"io"
	"sync"
)

// NumPeopleFeltIt is the template for the people-count label.
const NumPeopleFeltIt = "Number of people who felt it: %s"

// Display is the set of labels the screen writes to. Implementations are only
// called from the UI loop.
type Display interface {
	SetTitle(text string)
	SetNumberOfPeople(text string)
	SetPerceivedStrength(text string)
}

// LabelSnapshot is a copy of the label text at one point in time.
type LabelSnapshot struct {
	Title             string `json:"title"`
	NumberOfPeople    string `json:"number_of_people"`
	PerceivedStrength string `json:"perceived_strength"`
}

// Labels holds the current label text. It is safe to read from any goroutine
// through Snapshot.
type Labels struct {
	mu     sync.RWMutex
	labels LabelSnapshot
}

// NewLabels creates labels showing the given defaults.
func NewLabels(defaults LabelSnapshot) *Labels {
	return &Labels{labels: defaults}
}

func (l *Labels) SetTitle(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.labels.Title = text
}

func (l *Labels) SetNumberOfPeople(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.labels.NumberOfPeople = text
}

func (l *Labels) SetPerceivedStrength(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.labels.PerceivedStrength = text
}

// Snapshot returns a copy of the current labels.
func (l *Labels) Snapshot() LabelSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.labels
}

// TerminalDisplay prints each label to w as it is set.
type TerminalDisplay struct {
	w io.Writer
}

// NewTerminalDisplay creates a display writing to w.
func NewTerminalDisplay(w io.Writer) *TerminalDisplay {
	return &TerminalDisplay{w: w}
}

func (d *TerminalDisplay) SetTitle(text string) {
	fmt.Fprintln(d.w, text) //nolint:errcheck // best-effort terminal output
}

func (d *TerminalDisplay) SetNumberOfPeople(text string) {
	fmt.Fprintln(d.w, text) //nolint:errcheck // best-effort terminal output
}

func (d *TerminalDisplay) SetPerceivedStrength(text string) {
	fmt.Fprintln(d.w, text) //nolint:errcheck // best-effort terminal output
}

// Displays fans label updates out to several displays in order.
func Displays(ds ...Display) Display {
	return multiDisplay(ds)
}

type multiDisplay []Display

func (m multiDisplay) SetTitle(text string) {
	for _, d := range m {
		d.SetTitle(text)
	}
}

func (m multiDisplay) SetNumberOfPeople(text string) {
	for _, d := range m {
		d.SetNumberOfPeople(text)
	}
}

func (m multiDisplay) SetPerceivedStrength(text string) {
	for _, d := range m {
		d.SetPerceivedStrength(text)
	}
}

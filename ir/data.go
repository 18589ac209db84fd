package ir

import (
	"brik/util"
	"fmt"
	"strconv"
)

// DataEntry is a single labeled string constant.
type DataEntry struct {
	Label string
	Text  string
}

// DataSection is the ordered pool of labeled string constants of a module.  No
// two entries share a label.
type DataSection struct {
	entries []DataEntry
	labels  map[string]struct{}

	// counter is the number of the next automatic label.
	counter int
}

// NewDataSection creates a new empty data section.
func NewDataSection() *DataSection {
	return &DataSection{labels: make(map[string]struct{}), counter: 1}
}

// Add adds a string constant under the given label.
func (ds *DataSection) Add(label, text string) error {
	if _, ok := ds.labels[label]; ok {
		return fmt.Errorf("data label `%s` is already defined", label)
	}

	ds.labels[label] = struct{}{}
	ds.entries = append(ds.entries, DataEntry{Label: label, Text: text})
	return nil
}

// AddAuto adds a string constant under the next free automatic label of the
// form `auto_str_<n>` and returns the label.
func (ds *DataSection) AddAuto(text string) string {
	for {
		label := AutoLabelPrefix + strconv.Itoa(ds.counter)
		ds.counter++

		if ds.Add(label, text) == nil {
			return label
		}
	}
}

// Entries returns the entries of the data section in order.
func (ds *DataSection) Entries() []DataEntry {
	return append([]DataEntry(nil), ds.entries...)
}

// Len returns the number of entries.
func (ds *DataSection) Len() int {
	return len(ds.entries)
}

// Lookup returns the text stored under a label.
func (ds *DataSection) Lookup(label string) (string, bool) {
	for _, entry := range ds.entries {
		if entry.Label == label {
			return entry.Text, true
		}
	}

	return "", false
}

func (ds *DataSection) PrettyPrint(p *util.Printer) {
	p.AppendLn("Data [")
	p.Right()
	for _, entry := range ds.entries {
		p.AppendLn(fmt.Sprintf("%s: %q", entry.Label, entry.Text))
	}
	p.Left()
	p.AppendLn("]")
}

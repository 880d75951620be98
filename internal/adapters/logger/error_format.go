package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// messager describes an error that can report its own message without the chain.
// zerr.Error and the domain failure types provide it.
type messager interface {
	Message() string
}

// metadataer describes an error carrying structured key-value context (zerr.Error).
type metadataer interface {
	Metadata() map[string]any
}

// causer describes an error with a single primary cause besides its classification.
// The domain failure types unwrap to several errors; Cause selects the one to follow.
type causer interface {
	Cause() error
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the error chain and returns one entry per level.
// Levels without a message of their own (zerr.With on a plain error) merge
// their metadata into the previous level, or the next one at the top of the chain.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any
	current := err

	for current != nil {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		var meta map[string]any
		if md, ok := current.(metadataer); ok {
			meta = md.Metadata()
		}

		msg := m.Message()
		switch {
		case msg != "":
			if pending != nil {
				maps.Copy(pending, meta)
				meta, pending = pending, nil
			}
			entries = append(entries, ErrorEntry{Message: msg, Metadata: meta})
		case len(entries) > 0:
			last := &entries[len(entries)-1]
			if last.Metadata == nil {
				last.Metadata = map[string]any{}
			}
			maps.Copy(last.Metadata, meta)
		default:
			// Nothing to attach to yet; carry the metadata to the next level.
			pending = meta
		}

		if c, ok := current.(causer); ok {
			current = c.Cause()
			continue
		}
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders entries as "Error: ..." followed by an indented "Caused by:" list.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		lead, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lead, indent = "    → ", "      "
		}

		lines = append(lines, lead+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}

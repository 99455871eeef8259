// Package contextblock assembles profile and memory snippets into the
// single text block injected at session start.
//
// The block is wrapped in recognizable begin/end markers so downstream
// consumers can detect injected context and strip it back out if needed.
package contextblock

import (
	"strings"

	"github.com/membridge/membridge/memoryapi"
)

// Markers delimiting the injected block.
const (
	BeginMarker = "<membridge-context>"
	EndMarker   = "</membridge-context>"
)

// Section headings, in the fixed output order.
const (
	profileHeading     = "## About the user"
	preferencesHeading = "## Known preferences"
	userHeading        = "## Relevant user memories"
	projectHeading     = "## Relevant project memories"
)

// Format renders the injectable context block. Sections appear in fixed
// order and only when non-empty: profile summary, known preferences, user
// memories, project memories. Memory and preference order is preserved
// from the input.
//
// When nothing has content the result is the empty string, signalling the
// caller to skip injection entirely.
func Format(profile *memoryapi.Profile, userMemories, projectMemories []memoryapi.Memory) string {
	var sections []string

	if profile != nil && profile.Summary != "" {
		sections = append(sections, profileHeading+"\n"+profile.Summary)
	}

	if profile != nil && len(profile.Preferences) > 0 {
		var b strings.Builder
		b.WriteString(preferencesHeading)
		for _, pref := range profile.Preferences {
			b.WriteString("\n- ")
			b.WriteString(pref)
		}
		sections = append(sections, b.String())
	}

	if s := memorySection(userHeading, userMemories); s != "" {
		sections = append(sections, s)
	}
	if s := memorySection(projectHeading, projectMemories); s != "" {
		sections = append(sections, s)
	}

	if len(sections) == 0 {
		return ""
	}

	return BeginMarker + "\n" + strings.Join(sections, "\n\n") + "\n" + EndMarker
}

// memorySection renders one bulleted memory list, tagging each line with a
// bracketed type label when the memory carries one.
func memorySection(heading string, memories []memoryapi.Memory) string {
	if len(memories) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(heading)
	for _, m := range memories {
		b.WriteString("\n- ")
		b.WriteString(m.Content)
		if m.Type != "" {
			b.WriteString(" [")
			b.WriteString(m.Type)
			b.WriteString("]")
		}
	}
	return b.String()
}

package contextblock

import (
	"strings"
	"testing"

	"github.com/membridge/membridge/memoryapi"
)

func TestFormatEmptyInputs(t *testing.T) {
	if got := Format(nil, nil, nil); got != "" {
		t.Errorf("Format(nil, nil, nil) = %q, want empty", got)
	}
	if got := Format(&memoryapi.Profile{}, []memoryapi.Memory{}, []memoryapi.Memory{}); got != "" {
		t.Errorf("empty profile and memories should produce no block, got %q", got)
	}
}

func TestFormatProfileOnly(t *testing.T) {
	got := Format(&memoryapi.Profile{Summary: "S"}, nil, nil)

	if !strings.HasPrefix(got, BeginMarker+"\n") {
		t.Errorf("block should start with the begin marker, got %q", got)
	}
	if !strings.HasSuffix(got, "\n"+EndMarker) {
		t.Errorf("block should end with the end marker, got %q", got)
	}
	if !strings.Contains(got, "## About the user\nS") {
		t.Errorf("missing profile section: %q", got)
	}
	if strings.Contains(got, "## Known preferences") || strings.Contains(got, "memories") {
		t.Errorf("unexpected extra sections: %q", got)
	}
}

func TestFormatPreferencesPreserveOrder(t *testing.T) {
	profile := &memoryapi.Profile{Preferences: []string{"tabs over spaces", "dark mode", "vim"}}
	got := Format(profile, nil, nil)

	a := strings.Index(got, "- tabs over spaces")
	b := strings.Index(got, "- dark mode")
	c := strings.Index(got, "- vim")
	if a < 0 || b < 0 || c < 0 || !(a < b && b < c) {
		t.Errorf("preference order not preserved: %q", got)
	}
}

func TestFormatMemoryOrderAndTypeLabels(t *testing.T) {
	user := []memoryapi.Memory{
		{Content: "first", Type: "fact"},
		{Content: "second"},
	}
	project := []memoryapi.Memory{
		{Content: "uses Go modules", Type: "episode"},
	}
	got := Format(nil, user, project)

	if !strings.Contains(got, "- first [fact]") {
		t.Errorf("missing typed memory line: %q", got)
	}
	if !strings.Contains(got, "- second") {
		t.Errorf("missing untyped memory line: %q", got)
	}
	if strings.Contains(got, "- second [") {
		t.Errorf("untyped memory should have no label: %q", got)
	}

	userIdx := strings.Index(got, "## Relevant user memories")
	projIdx := strings.Index(got, "## Relevant project memories")
	if userIdx < 0 || projIdx < 0 || userIdx > projIdx {
		t.Errorf("sections out of order: %q", got)
	}
	if strings.Index(got, "- first") > strings.Index(got, "- second") {
		t.Errorf("memory order not preserved: %q", got)
	}
}

func TestFormatSectionOrderIsFixed(t *testing.T) {
	profile := &memoryapi.Profile{Summary: "S", Preferences: []string{"p"}}
	got := Format(profile, []memoryapi.Memory{{Content: "u"}}, []memoryapi.Memory{{Content: "pr"}})

	order := []string{
		"## About the user",
		"## Known preferences",
		"## Relevant user memories",
		"## Relevant project memories",
	}
	last := -1
	for _, heading := range order {
		idx := strings.Index(got, heading)
		if idx < 0 {
			t.Fatalf("missing section %q in %q", heading, got)
		}
		if idx < last {
			t.Errorf("section %q out of order in %q", heading, got)
		}
		last = idx
	}
}

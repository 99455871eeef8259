package membridge

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/membridge/membridge/contextblock"
	"github.com/membridge/membridge/hooks"
	"github.com/membridge/membridge/memoryapi"
)

func TestInjectContextPrependsOnePart(t *testing.T) {
	backend := &fakeBackend{
		profile: &memoryapi.Profile{Summary: "knows Go", Preferences: []string{"tabs"}},
	}
	p := newTestPlugin(t, backend)

	parts := []hooks.Part{{Type: hooks.PartTypeText, Text: "original prompt"}}
	if err := p.InjectContext(context.Background(), "s1", "m1", &parts); err != nil {
		t.Fatalf("InjectContext: %v", err)
	}

	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	if parts[1].Text != "original prompt" {
		t.Errorf("original part not preserved: %+v", parts)
	}
	injected := parts[0].Text
	if !strings.HasPrefix(injected, contextblock.BeginMarker) || !strings.HasSuffix(injected, contextblock.EndMarker) {
		t.Errorf("injected part not marker-wrapped: %q", injected)
	}
	if !strings.Contains(injected, "knows Go") {
		t.Errorf("profile summary missing: %q", injected)
	}
}

func TestInjectContextIdempotentPerSession(t *testing.T) {
	backend := &fakeBackend{profile: &memoryapi.Profile{Summary: "S"}}
	p := newTestPlugin(t, backend)

	parts := []hooks.Part{}
	_ = p.InjectContext(context.Background(), "s1", "m1", &parts)
	_ = p.InjectContext(context.Background(), "s1", "m2", &parts)

	if len(parts) != 1 {
		t.Errorf("two calls for one session added %d parts, want 1", len(parts))
	}

	// A different session injects independently.
	other := []hooks.Part{}
	_ = p.InjectContext(context.Background(), "s2", "m1", &other)
	if len(other) != 1 {
		t.Errorf("second session got %d parts, want 1", len(other))
	}
}

func TestInjectContextConcurrentSameSession(t *testing.T) {
	backend := &fakeBackend{profile: &memoryapi.Profile{Summary: "S"}}
	p := newTestPlugin(t, backend)

	var mu sync.Mutex
	total := 0

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parts := []hooks.Part{}
			_ = p.InjectContext(context.Background(), "s1", "m1", &parts)
			mu.Lock()
			total += len(parts)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if total != 1 {
		t.Errorf("concurrent calls injected %d parts in total, want 1", total)
	}
}

func TestInjectContextNothingToInject(t *testing.T) {
	backend := &fakeBackend{} // no profile, no memories
	p := newTestPlugin(t, backend)

	parts := []hooks.Part{{Type: hooks.PartTypeText, Text: "prompt"}}
	if err := p.InjectContext(context.Background(), "s1", "m1", &parts); err != nil {
		t.Fatalf("InjectContext: %v", err)
	}
	if len(parts) != 1 {
		t.Errorf("empty block should add no part, got %d parts", len(parts))
	}
}

func TestInjectContextUnconfiguredIsNoOp(t *testing.T) {
	backend := &fakeBackend{profile: &memoryapi.Profile{Summary: "S"}}
	p := newUnconfiguredPlugin(t, backend)

	parts := []hooks.Part{}
	if err := p.InjectContext(context.Background(), "s1", "m1", &parts); err != nil {
		t.Fatalf("InjectContext: %v", err)
	}
	if len(parts) != 0 {
		t.Errorf("unconfigured plugin injected %d parts", len(parts))
	}
	if backend.profileCalls != 0 {
		t.Errorf("unconfigured plugin hit the backend %d times", backend.profileCalls)
	}
}

func TestInjectContextAbsorbsBackendFailure(t *testing.T) {
	backend := &fakeBackend{failAll: true}
	p := newTestPlugin(t, backend)

	parts := []hooks.Part{{Type: hooks.PartTypeText, Text: "prompt"}}
	if err := p.InjectContext(context.Background(), "s1", "m1", &parts); err != nil {
		t.Fatalf("backend failure must not surface: %v", err)
	}
	if len(parts) != 1 {
		t.Errorf("failed retrieval should inject nothing, got %d parts", len(parts))
	}
}

func TestInjectContextMemorySections(t *testing.T) {
	backend := &fakeBackend{}
	p := newTestPlugin(t, backend)
	backend.memoriesByTag = map[string][]memoryapi.Memory{
		p.Tags().User:    {{Content: "prefers short answers", Type: "fact"}},
		p.Tags().Project: {{Content: "repo uses make"}},
	}

	parts := []hooks.Part{}
	_ = p.InjectContext(context.Background(), "s1", "m1", &parts)

	if len(parts) != 1 {
		t.Fatalf("got %d parts, want 1", len(parts))
	}
	text := parts[0].Text
	if !strings.Contains(text, "prefers short answers [fact]") {
		t.Errorf("user memory missing: %q", text)
	}
	if !strings.Contains(text, "repo uses make") {
		t.Errorf("project memory missing: %q", text)
	}
}

package membridge

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/membridge/membridge/config"
	"github.com/membridge/membridge/memoryapi"
)

// fakeBackend is an in-memory memoryapi.Client recording every call.
type fakeBackend struct {
	mu sync.Mutex

	profile         *memoryapi.Profile
	memoriesByTag   map[string][]memoryapi.Memory
	searchResults   []memoryapi.Memory
	ingestionStatus memoryapi.IngestionStatus
	failAll         bool

	createdMemories []memoryapi.Memory
	searchedTags    [][]string
	forgottenIDs    []string
	listCalls       int
	profileCalls    int
}

var errFakeBackend = errors.New("fake backend failure")

func (f *fakeBackend) CreateMemory(ctx context.Context, content, tag, memType string) (*memoryapi.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errFakeBackend
	}
	m := memoryapi.Memory{ID: "m1", Content: content, Type: memType, ContainerTag: tag}
	f.createdMemories = append(f.createdMemories, m)
	return &m, nil
}

func (f *fakeBackend) ListMemories(ctx context.Context, tag string, limit int) ([]memoryapi.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.failAll {
		return nil, errFakeBackend
	}
	return f.memoriesByTag[tag], nil
}

func (f *fakeBackend) ForgetMemory(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errFakeBackend
	}
	f.forgottenIDs = append(f.forgottenIDs, id)
	return nil
}

func (f *fakeBackend) Search(ctx context.Context, query string, tags []string, limit int, mode memoryapi.SearchMode) ([]memoryapi.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errFakeBackend
	}
	f.searchedTags = append(f.searchedTags, tags)
	return f.searchResults, nil
}

func (f *fakeBackend) ComputeProfile(ctx context.Context, tag string, opts memoryapi.ProfileOptions) (*memoryapi.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCalls++
	if f.failAll {
		return nil, errFakeBackend
	}
	return f.profile, nil
}

func (f *fakeBackend) CreateDocument(ctx context.Context, content, tag string, opts memoryapi.DocumentOptions) (*memoryapi.IngestionJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errFakeBackend
	}
	return &memoryapi.IngestionJob{DocumentID: "d1", IngestionID: "i1", Status: memoryapi.StatusPending}, nil
}

func (f *fakeBackend) GetIngestionStatus(ctx context.Context, ingestionID string) (*memoryapi.IngestionJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errFakeBackend
	}
	return &memoryapi.IngestionJob{DocumentID: "d1", IngestionID: ingestionID, Status: f.ingestionStatus}, nil
}

func (f *fakeBackend) IngestConversation(ctx context.Context, messages []memoryapi.ConversationMessage, tag, sessionID, memType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errFakeBackend
	}
	return nil
}

// newTestPlugin builds a configured plugin with a fake backend. The
// environment is scrubbed so only the test's own sources contribute.
func newTestPlugin(t *testing.T, backend memoryapi.Client, opts ...Option) *Plugin {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "test-key")
	t.Setenv(config.EnvConfigDir, t.TempDir())

	opts = append([]Option{WithBackend(backend)}, opts...)
	p, err := New(Config{ProjectDir: t.TempDir(), Username: "tester"}, opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Close)
	return p
}

// newUnconfiguredPlugin builds a plugin with no API key from any source.
func newUnconfiguredPlugin(t *testing.T, backend memoryapi.Client) *Plugin {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvConfigDir, t.TempDir())

	p, err := New(Config{ProjectDir: t.TempDir(), Username: "tester"}, WithBackend(backend))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Close)
	return p
}

func TestNewRequiresProjectDir(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())
	cases := []Option{
		WithLogger(nil),
		WithBackend(nil),
		WithResolver(nil),
		WithCooldown(0),
		WithMemoryLimit(-1),
		WithInjectionCacheSize(0),
		WithSessionSweep(0),
	}
	for i, opt := range cases {
		if _, err := New(Config{ProjectDir: t.TempDir()}, opt); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("option %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
}

func TestTagsDerivedFromIdentity(t *testing.T) {
	backend := &fakeBackend{}
	p := newTestPlugin(t, backend)

	tags := p.Tags()
	if tags.User == "" || tags.Project == "" {
		t.Errorf("tags not derived: %+v", tags)
	}
}

func TestTagOverridesFromEnvironment(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "test-key")
	t.Setenv(config.EnvConfigDir, t.TempDir())
	t.Setenv(config.EnvUserTag, "user_override")
	t.Setenv(config.EnvProjectTag, "proj_override")

	p, err := New(Config{ProjectDir: t.TempDir()}, WithBackend(&fakeBackend{}))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if p.Tags().User != "user_override" || p.Tags().Project != "proj_override" {
		t.Errorf("overrides ignored: %+v", p.Tags())
	}
}

// Package config resolves the plugin's effective configuration from
// environment variables, a project-local file, and a global file.
//
// Precedence is evaluated per field, not per object: a field missing from a
// higher-precedence source falls through to the next source for that field
// only. Order: environment variable > project-local file > global file >
// built-in default.
package config

import "os"

// Environment variables read during resolution.
const (
	EnvAPIKey     = "MEMBRIDGE_API_KEY"
	EnvBaseURL    = "MEMBRIDGE_BASE_URL"
	EnvUserTag    = "MEMBRIDGE_CONTAINER_TAG"
	EnvProjectTag = "MEMBRIDGE_PROJECT_CONTAINER_TAG"

	// EnvConfigDir overrides the directory holding the global config file.
	EnvConfigDir = "MEMBRIDGE_CONFIG_DIR"
)

// DefaultBaseURL is the built-in backend endpoint used when no source sets
// baseUrl. It is the only field with a non-empty default.
const DefaultBaseURL = "https://api.membridge.dev"

// Configuration is an immutable snapshot of the resolved settings. Compute
// a fresh one with Resolver.Resolve; do not mutate a shared instance.
type Configuration struct {
	// APIKey authenticates against the memory backend. Empty means the
	// plugin is unconfigured and all backend access is disabled.
	APIKey string

	// BaseURL is the backend endpoint. Always non-empty.
	BaseURL string

	// ContainerTagUser, when set, overrides derivation of the user tag.
	ContainerTagUser string

	// ContainerTagProject, when set, overrides derivation of the project tag.
	ContainerTagProject string
}

// IsConfigured reports whether an API key was resolved from any source.
func (c Configuration) IsConfigured() bool {
	return c.APIKey != ""
}

// fileConfig mirrors the on-disk JSON shape. Empty fields contribute
// nothing during the merge.
type fileConfig struct {
	APIKey              string `json:"apiKey"`
	BaseURL             string `json:"baseUrl"`
	ContainerTag        string `json:"containerTag"`
	ProjectContainerTag string `json:"projectContainerTag"`
}

// Resolver computes configuration snapshots. The zero value is not usable;
// construct with NewResolver.
type Resolver struct {
	// lookupEnv and userConfigDir are seams for tests; they default to the
	// os implementations.
	lookupEnv     func(string) (string, bool)
	userConfigDir func() (string, error)
}

// NewResolver returns a Resolver backed by the process environment.
func NewResolver() *Resolver {
	return &Resolver{
		lookupEnv:     os.LookupEnv,
		userConfigDir: os.UserConfigDir,
	}
}

// Resolve computes the effective configuration for the given project
// directory. projectDir may be empty, in which case no project-local file
// is consulted. Resolve never fails: unreadable or malformed sources simply
// contribute nothing.
func (r *Resolver) Resolve(projectDir string) Configuration {
	project := loadFile(r.projectFilePath(projectDir))
	global := loadFile(r.globalFilePath())

	return Configuration{
		APIKey:              r.firstNonEmpty(EnvAPIKey, project.APIKey, global.APIKey, ""),
		BaseURL:             r.firstNonEmpty(EnvBaseURL, project.BaseURL, global.BaseURL, DefaultBaseURL),
		ContainerTagUser:    r.firstNonEmpty(EnvUserTag, project.ContainerTag, global.ContainerTag, ""),
		ContainerTagProject: r.firstNonEmpty(EnvProjectTag, project.ProjectContainerTag, global.ProjectContainerTag, ""),
	}
}

// firstNonEmpty applies the per-field precedence chain for one field.
func (r *Resolver) firstNonEmpty(envName, projectValue, globalValue, fallback string) string {
	if v, ok := r.lookupEnv(envName); ok && v != "" {
		return v
	}
	if projectValue != "" {
		return projectValue
	}
	if globalValue != "" {
		return globalValue
	}
	return fallback
}

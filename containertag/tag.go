// Package containertag derives the opaque container tags that partition
// stored memories into per-user and per-project namespaces.
//
// Tags are deterministic: the same identity input always produces the same
// tag, across calls and across processes. The backend treats tags as opaque
// strings, so an explicit override is used verbatim and never hashed.
package containertag

import (
	"fmt"
	"strings"
)

// Tag prefixes for the two supported scopes.
const (
	userPrefix    = "user_"
	projectPrefix = "proj_"
)

// FallbackUser is hashed into the user tag when no account name is available.
const FallbackUser = "unknown"

// Tags holds the derived container tags for one plugin instance.
type Tags struct {
	// User partitions memories shared across all projects of one account.
	User string

	// Project partitions memories scoped to a single project directory.
	Project string
}

// Overrides supplies explicit container tags. A non-empty field bypasses
// derivation entirely for that scope.
type Overrides struct {
	User    string
	Project string
}

// Hash folds a string into an unsigned 32-bit value rendered as hex.
// The fold is h = (h*33) XOR ch, seeded at 5381 (djb2, xor variant).
// Not cryptographic; collisions are possible but irrelevant for namespacing.
func Hash(s string) string {
	h := uint32(5381)
	for _, ch := range s {
		h = (h * 33) ^ uint32(ch)
	}
	return fmt.Sprintf("%x", h)
}

// Slug normalizes a name into a lowercase token safe to embed in a tag.
// Runs of non-alphanumeric characters collapse into single dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, ch := range strings.ToLower(s) {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			b.WriteRune(ch)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Derive computes the user and project tags for the given identity.
//
// The user tag hashes the account name (FallbackUser when empty). The
// project tag hashes the full project directory path and embeds a slug of
// the directory's base name for readability; the slug carries no identity,
// only the hash partitions. Overrides win verbatim.
func Derive(username, projectDir string, ov Overrides) Tags {
	tags := Tags{User: ov.User, Project: ov.Project}

	if tags.User == "" {
		name := username
		if name == "" {
			name = FallbackUser
		}
		tags.User = userPrefix + Hash(name)
	}

	if tags.Project == "" {
		slug := Slug(baseName(projectDir))
		if slug == "" {
			tags.Project = projectPrefix + Hash(projectDir)
		} else {
			tags.Project = projectPrefix + slug + "_" + Hash(projectDir)
		}
	}

	return tags
}

// baseName is a separator-agnostic filepath.Base: config files written on
// one platform may reference directories from another, so both separators
// are honored regardless of the host OS.
func baseName(path string) string {
	trimmed := strings.TrimRight(path, "/\\")
	if i := strings.LastIndexAny(trimmed, "/\\"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

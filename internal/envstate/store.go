// Package envstate persists lab outputs as a flat KEY=VALUE file shared
// across command invocations. The file stays shell-sourceable so operators
// can `source` it, but writes go through an upsert-by-key read-modify-write
// instead of blind appends, so a key has exactly one line and re-runs never
// accumulate stale duplicates.
package envstate

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFile is the state file name used when none is configured.
const DefaultFile = "akslab.env"

// Store is an on-disk KEY=VALUE state file.
type Store struct {
	path string

	values map[string]string
	order  []string // first-seen key order, preserved across saves
}

// Open loads the state file at path. A missing file yields an empty store;
// the file is created on the first Save.
func Open(path string) (*Store, error) {
	s := &Store{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		s.set(key, unquote(value))
	}

	return s, nil
}

// Path returns the file path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value for key and whether it is present.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Require returns the value for key or a missing-precondition error telling
// the operator which command produces it.
func (s *Store) Require(key, producedBy string) (string, error) {
	v, ok := s.values[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s is not set in %s: run 'akslab %s' first", key, s.path, producedBy)
	}
	return v, nil
}

// Set upserts a single key. Later values for the same key replace earlier
// ones; key order is preserved from first insertion.
func (s *Store) Set(key, value string) {
	s.set(key, value)
}

// SetAll upserts a batch of keys in the given order.
func (s *Store) SetAll(pairs [][2]string) {
	for _, p := range pairs {
		s.set(p[0], p[1])
	}
}

// Keys returns all keys in first-seen order.
func (s *Store) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Save writes the store back to disk atomically (temp file + rename) so a
// crashed invocation never leaves a truncated state file behind.
func (s *Store) Save() error {
	var sb strings.Builder
	sb.WriteString("# akslab state file - sourced by lab tooling, managed by akslab\n")
	for _, key := range s.order {
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(quoteIfNeeded(s.values[key]))
		sb.WriteByte('\n')
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".akslab-env-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close state file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set state file mode: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}

func (s *Store) set(key, value string) {
	if _, exists := s.values[key]; !exists {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

var (
	dquoteEscape   = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")
	dquoteUnescape = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\$`, "$", "\\`", "`")
)

// unquote strips one level of matching single or double quotes, the way a
// shell would when sourcing the file.
func unquote(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 {
		if v[0] == '"' && v[len(v)-1] == '"' {
			return dquoteUnescape.Replace(v[1 : len(v)-1])
		}
		if v[0] == '\'' && v[len(v)-1] == '\'' {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// quoteIfNeeded quotes values containing shell-significant characters so the
// file stays safely sourceable. Single quotes are preferred because the shell
// takes their content literally; double quotes with escaping are the fallback
// for values that themselves contain a single quote. Plain names, IDs, and
// URLs are left bare to keep diffs readable.
func quoteIfNeeded(v string) string {
	if v == "" {
		return "''"
	}
	if !strings.ContainsAny(v, " \t#$&|;<>()`\\\"'") {
		return v
	}
	if !strings.Contains(v, "'") {
		return "'" + v + "'"
	}
	return `"` + dquoteEscape.Replace(v) + `"`
}

// Package manifest renders the lab's Kubernetes manifest templates by
// literal token replacement. Templates carry sentinel placeholder values
// that double as usable defaults: a token with no substitution supplied is
// left untouched rather than erroring, matching how the lab manifests ship
// with a default service-account name baked in.
package manifest

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed templates/*
var templatesFS embed.FS

// Well-known placeholder tokens used by the lab templates.
const (
	TokenStorageAccount = "STORAGE_ACCOUNT_PLACEHOLDER"
	TokenContainerName  = "CONTAINER_NAME_PLACEHOLDER"
	TokenServiceAccount = "workload-identity-sa"
	TokenImage          = "IMAGE_PLACEHOLDER"
	TokenClientID       = "CLIENT_ID_PLACEHOLDER"
	TokenTenantID       = "TENANT_ID_PLACEHOLDER"
	TokenNamespace      = "NAMESPACE_PLACEHOLDER"
)

// Render loads the named embedded template and applies the substitutions by
// literal string replacement. Tokens without a substitution keep their
// template default; substitutions whose token does not occur in the template
// are silently ignored.
func Render(name string, substitutions map[string]string) ([]byte, error) {
	raw, err := templatesFS.ReadFile(path.Join("templates", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest template %s: %w", name, err)
	}
	return Replace(raw, substitutions), nil
}

// RenderStrict is Render plus a check that every supplied substitution was
// actually applied, guarding against a renamed placeholder silently shipping
// the template default.
func RenderStrict(name string, substitutions map[string]string) ([]byte, error) {
	raw, err := templatesFS.ReadFile(path.Join("templates", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest template %s: %w", name, err)
	}

	var missing []string
	for token := range substitutions {
		if !strings.Contains(string(raw), token) {
			missing = append(missing, token)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("template %s does not contain placeholder(s): %s", name, strings.Join(missing, ", "))
	}

	return Replace(raw, substitutions), nil
}

// Replace applies the substitutions to raw by literal token replacement.
func Replace(raw []byte, substitutions map[string]string) []byte {
	if len(substitutions) == 0 {
		return raw
	}

	pairs := make([]string, 0, len(substitutions)*2)
	// Deterministic order; replacement targets are distinct sentinels so
	// order does not change the result, but stable output helps tests.
	tokens := make([]string, 0, len(substitutions))
	for token := range substitutions {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		pairs = append(pairs, token, substitutions[token])
	}

	return []byte(strings.NewReplacer(pairs...).Replace(string(raw)))
}

// Templates returns the names of all embedded manifest templates.
func Templates() ([]string, error) {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("failed to list manifest templates: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

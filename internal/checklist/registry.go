// Package checklist loads the fixed DPDPA Chapter II obligation checklists.
//
// Checklists are hand-curated approximations of Sections 4-10 of the Digital
// Personal Data Protection Act, 2023 (India). They are embedded in the binary
// and loaded once into an immutable Registry at process start.
package checklist

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nmehta/dpdpacheck/internal/model"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ConfigError reports a malformed checklist. It is fatal for that section's
// report only; other sections proceed.
type ConfigError struct {
	Section string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("checklist %q: %s", e.Section, e.Reason)
}

// Registry holds all loaded checklists in statute order.
type Registry struct {
	checklists []model.Checklist
}

// Load parses the embedded checklist files and validates every section.
func Load() (*Registry, error) {
	return loadFS(dataFS, "data")
}

func loadFS(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read checklist dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	// File names carry zero-padded section numbers; lexical order is statute order.
	sort.Strings(names)

	reg := &Registry{}
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var cl model.Checklist
		if err := yaml.Unmarshal(raw, &cl); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if err := Validate(cl); err != nil {
			return nil, err
		}
		cl.Version = version(cl)
		reg.checklists = append(reg.checklists, cl)
	}

	if len(reg.checklists) == 0 {
		return nil, fmt.Errorf("no checklists found in %s", dir)
	}
	return reg, nil
}

// Validate checks a single checklist for structural problems: a missing
// section name, zero items, blank item fields, or duplicate IDs.
func Validate(cl model.Checklist) error {
	if strings.TrimSpace(cl.Section) == "" {
		return &ConfigError{Section: cl.Section, Reason: "missing section name"}
	}
	if len(cl.Items) == 0 {
		return &ConfigError{Section: cl.Section, Reason: "empty checklist"}
	}
	seen := make(map[string]bool, len(cl.Items))
	for i, it := range cl.Items {
		if strings.TrimSpace(it.ID) == "" {
			return &ConfigError{Section: cl.Section, Reason: fmt.Sprintf("item %d has no id", i)}
		}
		if strings.TrimSpace(it.Text) == "" {
			return &ConfigError{Section: cl.Section, Reason: fmt.Sprintf("item %q has no text", it.ID)}
		}
		if seen[it.ID] {
			return &ConfigError{Section: cl.Section, Reason: fmt.Sprintf("duplicate item id %q", it.ID)}
		}
		seen[it.ID] = true
	}
	return nil
}

// version hashes the checklist content. The hash keys the oracle response
// cache, so editing any item text invalidates cached verdicts.
func version(cl model.Checklist) string {
	h := sha256.New()
	h.Write([]byte(cl.Section))
	for _, it := range cl.Items {
		h.Write([]byte{0})
		h.Write([]byte(it.ID))
		h.Write([]byte{0})
		h.Write([]byte(it.Text))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// All returns every checklist in statute order. The returned slice is a copy;
// the registry itself is never mutated after Load.
func (r *Registry) All() []model.Checklist {
	out := make([]model.Checklist, len(r.checklists))
	copy(out, r.checklists)
	return out
}

// Sections returns the section display names in statute order.
func (r *Registry) Sections() []string {
	out := make([]string, len(r.checklists))
	for i, cl := range r.checklists {
		out[i] = cl.Section
	}
	return out
}

// Get returns the checklist whose section name matches, or false.
func (r *Registry) Get(section string) (model.Checklist, bool) {
	for _, cl := range r.checklists {
		if cl.Section == section {
			return cl, true
		}
	}
	return model.Checklist{}, false
}

// Filter returns the checklists whose section names are in keep, preserving
// statute order. Unknown names are reported as an error.
func (r *Registry) Filter(keep []string) ([]model.Checklist, error) {
	if len(keep) == 0 {
		return r.All(), nil
	}
	want := make(map[string]bool, len(keep))
	for _, s := range keep {
		want[s] = true
	}
	var out []model.Checklist
	for _, cl := range r.checklists {
		if want[cl.Section] {
			out = append(out, cl)
			delete(want, cl.Section)
		}
	}
	for s := range want {
		return nil, fmt.Errorf("unknown section: %q", s)
	}
	return out, nil
}

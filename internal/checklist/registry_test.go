package checklist

import (
	"strings"
	"testing"

	"github.com/nmehta/dpdpacheck/internal/model"
)

func TestLoad_EmbeddedChecklists(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	sections := reg.Sections()
	if len(sections) != 7 {
		t.Fatalf("expected 7 sections, got %d", len(sections))
	}

	// Statute order: Section 4 first, Section 10 last
	if !strings.HasPrefix(sections[0], "Section 4") {
		t.Errorf("expected Section 4 first, got %q", sections[0])
	}
	if !strings.HasPrefix(sections[6], "Section 10") {
		t.Errorf("expected Section 10 last, got %q", sections[6])
	}

	for _, cl := range reg.All() {
		if len(cl.Items) == 0 {
			t.Errorf("%s: no items", cl.Section)
		}
		if cl.Meaning == "" {
			t.Errorf("%s: no meaning", cl.Section)
		}
		if cl.Version == "" {
			t.Errorf("%s: no version hash", cl.Section)
		}
	}
}

func TestLoad_ItemIDsUniqueAndOrdered(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for _, cl := range reg.All() {
		seen := make(map[string]bool)
		for _, it := range cl.Items {
			if seen[it.ID] {
				t.Errorf("%s: duplicate item id %q", cl.Section, it.ID)
			}
			seen[it.ID] = true
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cl      model.Checklist
		wantErr bool
	}{
		{
			name: "valid",
			cl: model.Checklist{
				Section: "Section 4 — Grounds for Processing Personal Data",
				Items:   []model.ObligationItem{{ID: "s4-1", Text: "Lawful purpose only."}},
			},
		},
		{
			name:    "empty checklist",
			cl:      model.Checklist{Section: "Section 4"},
			wantErr: true,
		},
		{
			name:    "missing section name",
			cl:      model.Checklist{Items: []model.ObligationItem{{ID: "a", Text: "b"}}},
			wantErr: true,
		},
		{
			name: "duplicate ids",
			cl: model.Checklist{
				Section: "Section 5",
				Items: []model.ObligationItem{
					{ID: "s5-1", Text: "one"},
					{ID: "s5-1", Text: "two"},
				},
			},
			wantErr: true,
		},
		{
			name: "blank item text",
			cl: model.Checklist{
				Section: "Section 5",
				Items:   []model.ObligationItem{{ID: "s5-1", Text: "  "}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cl)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVersion_ChangesWithContent(t *testing.T) {
	a := model.Checklist{
		Section: "Section 4",
		Items:   []model.ObligationItem{{ID: "s4-1", Text: "Lawful purpose only."}},
	}
	b := model.Checklist{
		Section: "Section 4",
		Items:   []model.ObligationItem{{ID: "s4-1", Text: "Lawful purpose only, always."}},
	}

	if version(a) == version(b) {
		t.Error("expected different versions for different item text")
	}
	if version(a) != version(a) {
		t.Error("expected version to be deterministic")
	}
}

func TestFilter(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	all := reg.Sections()
	got, err := reg.Filter([]string{all[2], all[0]})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 checklists, got %d", len(got))
	}
	// Statute order preserved regardless of request order
	if got[0].Section != all[0] || got[1].Section != all[2] {
		t.Errorf("filter did not preserve statute order: %q, %q", got[0].Section, got[1].Section)
	}

	if _, err := reg.Filter([]string{"Section 99 — Nope"}); err == nil {
		t.Error("expected error for unknown section")
	}
}

package agents

import (
	"strings"
	"testing"
)

const (
	coordinatorID = "6993476350311a64b998bac5"
	writerID      = "6993473e50311a64b998babe"
	seoID         = "6993473e34e9a83c77a88ad7"
	designerID    = "699347634451bf9cf4bb57a6"
)

func TestNewRegistryLoadsEmbeddedRoster(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	var got []string
	for _, a := range r.List() {
		got = append(got, a.ID)
	}
	want := []string{coordinatorID, writerID, seoID, designerID}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", got, want)
	}

	if r.ContentAgent().ID != coordinatorID {
		t.Errorf("content agent = %s", r.ContentAgent().ID)
	}
	if r.ImageAgent().ID != designerID {
		t.Errorf("image agent = %s", r.ImageAgent().ID)
	}
	if r.ContentAgent().SystemPrompt == "" {
		t.Error("content agent has no system prompt")
	}
	if a, ok := r.Get(seoID); !ok || a.Name != "SEO Analyst" || a.ManagedBy != coordinatorID {
		t.Errorf("Get(seo) = %+v, %v", a, ok)
	}
	if _, ok := r.Get("nope"); ok {
		t.Error("Get(nope) found an agent")
	}
}

func TestStatus(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	tests := []struct {
		name   string
		active string
		want   map[string]bool
	}{
		{"none", "", map[string]bool{}},
		{"coordinator lights sub-agents", coordinatorID, map[string]bool{coordinatorID: true, writerID: true, seoID: true}},
		{"designer alone", designerID, map[string]bool{designerID: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range r.Status(tt.active) {
				if s.Active != tt.want[s.ID] {
					t.Errorf("%s active = %v, want %v", s.Name, s.Active, tt.want[s.ID])
				}
			}
		})
	}
}

func TestOverride(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	r.Override("content-x", "")

	if r.ContentAgent().ID != "content-x" {
		t.Errorf("content agent = %s", r.ContentAgent().ID)
	}
	if r.ImageAgent().ID != designerID {
		t.Errorf("image agent changed to %s", r.ImageAgent().ID)
	}
	if a, _ := r.Get(writerID); a.ManagedBy != "content-x" {
		t.Errorf("writer managed_by = %s", a.ManagedBy)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate after override: %v", err)
	}
}

func TestValidateRejectsIncompleteRoster(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no image agent", `
agents:
  a:
    name: A
    kind: content
`},
		{"unknown kind", `
agents:
  a: {name: A, kind: content}
  b: {name: B, kind: image}
  c: {name: C, kind: robot}
`},
		{"unknown manager", `
agents:
  a: {name: A, kind: content}
  b: {name: B, kind: image}
  c: {name: C, kind: sub, managed_by: zzz}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistryFromYAML([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

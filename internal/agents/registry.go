// Package agents holds the embedded roster of remote agents.
package agents

import (
	"embed"
	"fmt"
	"sync"

	models "campaigner/internal/domain/models/studio"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry is the agent roster
type Registry struct {
	agents []Agent
	mu     sync.RWMutex
}

// NewRegistry loads the embedded roster
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/agents.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read agents.yaml: %w", err)
	}
	return NewRegistryFromYAML(data)
}

// NewRegistryFromYAML builds a registry from roster YAML
func NewRegistryFromYAML(data []byte) (*Registry, error) {
	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agents: %w", err)
	}

	r := &Registry{agents: roster.Agents}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate requires exactly one content agent and one image agent,
// and sub-agents whose manager exists
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[Kind]int{}
	ids := map[string]bool{}
	for _, a := range r.agents {
		if a.ID == "" {
			return fmt.Errorf("agent %q has no id", a.Name)
		}
		switch a.Kind {
		case KindContent, KindImage, KindSub:
		default:
			return fmt.Errorf("agent %s: unknown kind %q", a.ID, a.Kind)
		}
		counts[a.Kind]++
		ids[a.ID] = true
	}
	if counts[KindContent] != 1 {
		return fmt.Errorf("roster needs exactly one content agent, found %d", counts[KindContent])
	}
	if counts[KindImage] != 1 {
		return fmt.Errorf("roster needs exactly one image agent, found %d", counts[KindImage])
	}
	for _, a := range r.agents {
		if a.ManagedBy != "" && !ids[a.ManagedBy] {
			return fmt.Errorf("agent %s: unknown manager %s", a.ID, a.ManagedBy)
		}
	}
	return nil
}

// Override replaces the ids of the content and image agents.
// Empty values keep the embedded id. Sub-agents follow their manager.
func (r *Registry) Override(contentID, imageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	renamed := map[string]string{}
	for i := range r.agents {
		switch {
		case r.agents[i].Kind == KindContent && contentID != "":
			renamed[r.agents[i].ID] = contentID
			r.agents[i].ID = contentID
		case r.agents[i].Kind == KindImage && imageID != "":
			renamed[r.agents[i].ID] = imageID
			r.agents[i].ID = imageID
		}
	}
	for i := range r.agents {
		if to, ok := renamed[r.agents[i].ManagedBy]; ok {
			r.agents[i].ManagedBy = to
		}
	}
}

// Get returns the agent with the given id
func (r *Registry) Get(id string) (Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.agents {
		if a.ID == id {
			return a, true
		}
	}
	return Agent{}, false
}

// List returns all agents in roster order
func (r *Registry) List() []Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Agent(nil), r.agents...)
}

// ContentAgent returns the phase-1 agent
func (r *Registry) ContentAgent() Agent { return r.byKind(KindContent) }

// ImageAgent returns the phase-2 agent
func (r *Registry) ImageAgent() Agent { return r.byKind(KindImage) }

func (r *Registry) byKind(kind Kind) Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.agents {
		if a.Kind == kind {
			return a
		}
	}
	return Agent{}
}

// Status returns the roster with active flags. An agent is active when it is
// activeID or when its manager is activeID. Empty activeID means none active.
func (r *Registry) Status(activeID string) []models.AgentStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.AgentStatus, 0, len(r.agents))
	for _, a := range r.agents {
		active := activeID != "" && (a.ID == activeID || a.ManagedBy == activeID)
		out = append(out, models.AgentStatus{ID: a.ID, Name: a.Name, Role: a.Role, Active: active})
	}
	return out
}

package agents

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind says what an agent is invoked for
type Kind string

const (
	KindContent Kind = "content"
	KindImage   Kind = "image"
	KindSub     Kind = "sub"
)

// Agent describes one remote agent
type Agent struct {
	// Agent id, the routing token passed to the transport (set from the YAML key)
	ID string `yaml:"-" json:"id"`

	Name      string `yaml:"name" json:"name"`
	Role      string `yaml:"role" json:"role"`
	Kind      Kind   `yaml:"kind" json:"kind"`
	ManagedBy string `yaml:"managed_by" json:"managed_by,omitempty"`

	// Used by model-backed transports only
	SystemPrompt string `yaml:"system_prompt" json:"-"`
	MaxTokens    int    `yaml:"max_tokens" json:"-"`
}

// Roster is the ordered agent list from agents.yaml
type Roster struct {
	Agents []Agent `yaml:"-"`
}

// UnmarshalYAML keeps agents in file order
func (r *Roster) UnmarshalYAML(node *yaml.Node) error {
	type agentsOnly struct {
		Agents map[string]Agent `yaml:"agents"`
	}
	var m agentsOnly
	if err := node.Decode(&m); err != nil {
		return err
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "agents" {
			continue
		}
		agentsNode := node.Content[i+1]
		for j := 0; j+1 < len(agentsNode.Content); j += 2 {
			id := agentsNode.Content[j].Value
			agent, ok := m.Agents[id]
			if !ok {
				return fmt.Errorf("agent %s: not decoded", id)
			}
			agent.ID = id
			r.Agents = append(r.Agents, agent)
		}
		break
	}
	return nil
}

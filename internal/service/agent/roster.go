// Package agent implements the agent transports: an offline lorem agent,
// Anthropic and OpenAI model-backed agents, and the hosted envelope API.
package agent

import (
	"fmt"
	"regexp"
	"strings"

	"campaigner/internal/agents"
)

// Roster resolves agent ids for model-backed transports
type Roster interface {
	Get(id string) (agents.Agent, bool)
}

func lookup(roster Roster, agentID string) (agents.Agent, error) {
	a, ok := roster.Get(agentID)
	if !ok {
		return agents.Agent{}, fmt.Errorf("unknown agent %s", agentID)
	}
	if a.Kind == agents.KindSub {
		return agents.Agent{}, fmt.Errorf("agent %s is managed by %s and cannot be invoked directly", agentID, a.ManagedBy)
	}
	return a, nil
}

var codeFence = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n(.*?)\\n?```$")

// stripCodeFence unwraps model output of the form ```json ... ```
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// promptField reads "Name: value" from a rendered prompt
func promptField(prompt, name string) string {
	prefix := name + ":"
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}

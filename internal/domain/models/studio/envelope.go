package studio

import "encoding/json"

// Envelope is the loosely typed result of one agent invocation.
// Result and ArtifactFiles stay raw; the normalizer decides what they mean.
type Envelope struct {
	Success       bool           `json:"success"`
	Error         string         `json:"error,omitempty"`
	Response      *AgentResponse `json:"response,omitempty"`
	ModuleOutputs *ModuleOutputs `json:"module_outputs,omitempty"`
}

// AgentResponse holds the agent's result slot
type AgentResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
}

// ModuleOutputs holds side outputs such as generated files
type ModuleOutputs struct {
	ArtifactFiles json.RawMessage `json:"artifact_files,omitempty"`
}

// ArtifactFile is the descriptor shape transports emit for generated files
type ArtifactFile struct {
	FileURL    string `json:"file_url"`
	Name       string `json:"name,omitempty"`
	FormatType string `json:"format_type,omitempty"`
}

// ResultValue returns the raw result slot, or nil when absent
func (e *Envelope) ResultValue() json.RawMessage {
	if e == nil || e.Response == nil {
		return nil
	}
	return e.Response.Result
}

// ArtifactValue returns the raw artifact_files slot, or nil when absent
func (e *Envelope) ArtifactValue() json.RawMessage {
	if e == nil || e.ModuleOutputs == nil {
		return nil
	}
	return e.ModuleOutputs.ArtifactFiles
}

// TextResult builds a successful envelope whose result is a JSON string
func TextResult(text string) *Envelope {
	raw, _ := json.Marshal(text)
	return &Envelope{Success: true, Response: &AgentResponse{Result: raw}}
}

// WithArtifacts attaches artifact descriptors to the envelope
func (e *Envelope) WithArtifacts(files []ArtifactFile) *Envelope {
	raw, _ := json.Marshal(files)
	e.ModuleOutputs = &ModuleOutputs{ArtifactFiles: raw}
	return e
}

// Failure builds a reported-failure envelope
func Failure(message string) *Envelope {
	return &Envelope{Success: false, Error: message}
}

// ErrorText returns the reported error, nil-safe
func (e *Envelope) ErrorText() string {
	if e == nil {
		return ""
	}
	return e.Error
}

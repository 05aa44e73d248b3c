package studio

// WorkflowState is the orchestrator's phase state
type WorkflowState string

const (
	StateIdle              WorkflowState = "idle"
	StateGeneratingContent WorkflowState = "generating_content"
	StateContentReady      WorkflowState = "content_ready"
	StateContentFailed     WorkflowState = "content_failed"
	StateGeneratingImages  WorkflowState = "generating_images"
	StateImagesReady       WorkflowState = "images_ready"
	StateImagesFailed      WorkflowState = "images_failed"
)

// AgentStatus is one row of the agent status panel
type AgentStatus struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// Snapshot is the read-only state handed to the presentation layer
type Snapshot struct {
	CurrentBrief     Brief           `json:"current_brief"`
	CurrentPackage   *ContentPackage `json:"current_package"`
	CurrentImages    []ImageAsset    `json:"current_images"`
	CurrentImageMeta *ImageMeta      `json:"current_image_meta"`
	CurrentEntryID   string          `json:"current_entry_id,omitempty"`
	WorkflowState    WorkflowState   `json:"workflow_state"`
	ActiveAgentID    string          `json:"active_agent_id"`
	Agents           []AgentStatus   `json:"agents"`
	StatusMessage    string          `json:"status_message"`
	ErrorMessage     string          `json:"error_message"`
	ContentLoading   bool            `json:"content_loading"`
	ImageLoading     bool            `json:"image_loading"`
	HistoryCount     int             `json:"history_count"`
}

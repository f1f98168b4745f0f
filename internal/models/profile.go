package models

// MemoryLevel describes how much conversational state an agent retains.
type MemoryLevel string

const (
	MemoryNone      MemoryLevel = "none"
	MemoryShortTerm MemoryLevel = "short-term"
	MemoryLongTerm  MemoryLevel = "long-term"
)

// InteractionStyle describes how an agent engages with its users.
type InteractionStyle string

const (
	StyleConversational InteractionStyle = "conversational"
	StyleTaskFocused    InteractionStyle = "task-focused"
	StyleCollaborative  InteractionStyle = "collaborative"
)

// RuntimeEnvironment describes where the agent is expected to run.
type RuntimeEnvironment string

const (
	RuntimeCloud  RuntimeEnvironment = "cloud"
	RuntimeLocal  RuntimeEnvironment = "local"
	RuntimeHybrid RuntimeEnvironment = "hybrid"
)

// Capabilities holds the functional traits requested for the agent. The
// struct is lazily initialized by derivation the first time any
// capability-bearing question is answered, so a partially interviewed
// profile never carries half-set capability state.
type Capabilities struct {
	Memory           MemoryLevel `json:"memory"`
	FileAccess       bool        `json:"file_access"`
	WebAccess        bool        `json:"web_access"`
	CodeExecution    bool        `json:"code_execution"`
	DataAnalysis     bool        `json:"data_analysis"`
	ToolIntegrations []string    `json:"tool_integrations"`
}

// NewCapabilities returns the all-disabled baseline capability record.
func NewCapabilities() *Capabilities {
	return &Capabilities{
		Memory:           MemoryNone,
		ToolIntegrations: []string{},
	}
}

// EnabledCount returns how many capability switches are on, counting each
// tool integration individually. Used for complexity bucketing.
func (c *Capabilities) EnabledCount() int {
	count := 0
	if c.Memory != "" && c.Memory != MemoryNone {
		count++
	}
	if c.FileAccess {
		count++
	}
	if c.WebAccess {
		count++
	}
	if c.CodeExecution {
		count++
	}
	if c.DataAnalysis {
		count++
	}
	return count + len(c.ToolIntegrations)
}

// Environment holds deployment constraints for the agent.
type Environment struct {
	Runtime RuntimeEnvironment `json:"runtime"`
}

// RequirementsProfile is the structured requirements record derived from the
// response ledger. Fields stay at their zero value until the question that
// governs them is answered; every field is owned by exactly one derivation
// rule.
type RequirementsProfile struct {
	Name             string           `json:"name,omitempty"`
	Description      string           `json:"description,omitempty"`
	PrimaryOutcome   string           `json:"primary_outcome,omitempty"`
	TargetAudience   []string         `json:"target_audience,omitempty"`
	InteractionStyle InteractionStyle `json:"interaction_style,omitempty"`
	DeliveryChannels []string         `json:"delivery_channels,omitempty"`
	SuccessMetrics   []string         `json:"success_metrics,omitempty"`
	Capabilities     *Capabilities    `json:"capabilities,omitempty"`
	Environment      *Environment     `json:"environment,omitempty"`
	Constraints      []string         `json:"constraints,omitempty"`
	AdditionalNotes  string           `json:"additional_notes,omitempty"`
}

// EnsureCapabilities returns the capability record, initializing it to the
// all-disabled baseline on first use.
func (p *RequirementsProfile) EnsureCapabilities() *Capabilities {
	if p.Capabilities == nil {
		p.Capabilities = NewCapabilities()
	}
	return p.Capabilities
}

// Capability tag vocabulary shared by profiles and templates.
const (
	TagMemory          = "memory"
	TagFileAccess      = "file-access"
	TagWebAccess       = "web-access"
	TagCodeExecution   = "code-execution"
	TagDataAnalysis    = "data-analysis"
	TagToolIntegration = "tool-integration"
)

// ActiveCapabilityTags flattens the enabled capability flags and non-empty
// list fields into the tag vocabulary used for template matching. Returns an
// empty slice when no capabilities have been derived yet.
func (p *RequirementsProfile) ActiveCapabilityTags() []string {
	if p.Capabilities == nil {
		return []string{}
	}
	c := p.Capabilities
	tags := []string{}
	if c.Memory != "" && c.Memory != MemoryNone {
		tags = append(tags, TagMemory)
	}
	if c.FileAccess {
		tags = append(tags, TagFileAccess)
	}
	if c.WebAccess {
		tags = append(tags, TagWebAccess)
	}
	if c.CodeExecution {
		tags = append(tags, TagCodeExecution)
	}
	if c.DataAnalysis {
		tags = append(tags, TagDataAnalysis)
	}
	if len(c.ToolIntegrations) > 0 {
		tags = append(tags, TagToolIntegration)
	}
	return tags
}

// ReadyForClassification reports whether the minimum fields required by
// full-mode classification are populated.
func (p *RequirementsProfile) ReadyForClassification() bool {
	return p.Name != "" && p.PrimaryOutcome != "" && p.InteractionStyle != ""
}

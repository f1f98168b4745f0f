package models

// Complexity buckets the estimated implementation effort.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// AgentRecommendation is the final artifact produced once the interview has
// completed and classification has picked a winning template. Export and
// share collaborators consume it read-only.
type AgentRecommendation struct {
	AgentType            string     `json:"agent_type"`
	RequiredDependencies []string   `json:"required_dependencies"`
	MCPServers           []string   `json:"mcp_servers"`
	ToolConfigurations   []string   `json:"tool_configurations"`
	SystemPrompt         string     `json:"system_prompt"`
	EstimatedComplexity  Complexity `json:"estimated_complexity"`
	ImplementationSteps  []string   `json:"implementation_steps"`
	Notes                string     `json:"notes"`
}

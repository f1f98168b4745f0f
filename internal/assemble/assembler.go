// Package assemble synthesizes the final agent recommendation from the
// winning template and the completed requirements profile. Assembly is pure:
// it never re-invokes classification and never mutates its inputs.
package assemble

import (
	"fmt"
	"strings"

	"github.com/harrison/foundry/internal/models"
)

// Complexity buckets by enabled capability count plus tool integrations.
const (
	lowComplexityMax    = 2
	mediumComplexityMax = 5
)

// Build deterministically produces the recommendation artifact for the
// winning template. The top score's reasoning is reused in the notes so the
// artifact explains its own selection.
func Build(tmpl models.Template, profile models.RequirementsProfile, top models.TemplateScore) *models.AgentRecommendation {
	caps := profile.Capabilities
	if caps == nil {
		caps = models.NewCapabilities()
	}

	return &models.AgentRecommendation{
		AgentType:            tmpl.ID,
		RequiredDependencies: dependencies(caps),
		MCPServers:           mcpServers(caps),
		ToolConfigurations:   toolConfigurations(caps),
		SystemPrompt:         systemPrompt(tmpl, profile, caps),
		EstimatedComplexity:  complexity(caps),
		ImplementationSteps:  implementationSteps(tmpl, profile, caps),
		Notes:                notes(tmpl, top),
	}
}

// systemPrompt interpolates the agent name, primary outcome, and enabled
// capabilities into a ready-to-use prompt string.
func systemPrompt(tmpl models.Template, profile models.RequirementsProfile, caps *models.Capabilities) string {
	var sb strings.Builder

	name := profile.Name
	if name == "" {
		name = tmpl.Name
	}
	fmt.Fprintf(&sb, "You are %s, %s\n\n", name, strings.TrimRight(tmpl.Description, "."))
	if profile.PrimaryOutcome != "" {
		fmt.Fprintf(&sb, "Your primary goal: %s.\n\n", strings.TrimRight(profile.PrimaryOutcome, "."))
	}
	if profile.InteractionStyle != "" {
		fmt.Fprintf(&sb, "Interaction style: %s.\n", profile.InteractionStyle)
	}

	enabled := enabledCapabilityNames(caps)
	if len(enabled) > 0 {
		fmt.Fprintf(&sb, "You have access to: %s.\n", strings.Join(enabled, ", "))
	}
	if len(profile.Constraints) > 0 {
		fmt.Fprintf(&sb, "Constraints you must respect: %s.\n", strings.Join(profile.Constraints, "; "))
	}

	return sb.String()
}

// enabledCapabilityNames returns human-readable names for the switched-on
// capabilities, in a fixed order.
func enabledCapabilityNames(caps *models.Capabilities) []string {
	var names []string
	if caps.Memory != "" && caps.Memory != models.MemoryNone {
		names = append(names, fmt.Sprintf("%s memory", caps.Memory))
	}
	if caps.FileAccess {
		names = append(names, "file access")
	}
	if caps.WebAccess {
		names = append(names, "web access")
	}
	if caps.CodeExecution {
		names = append(names, "code execution")
	}
	if caps.DataAnalysis {
		names = append(names, "data analysis")
	}
	for _, tool := range caps.ToolIntegrations {
		names = append(names, fmt.Sprintf("the %s integration", tool))
	}
	return names
}

// dependencies maps enabled capabilities to the runtime dependencies they
// pull in.
func dependencies(caps *models.Capabilities) []string {
	deps := []string{"llm provider sdk"}
	if caps.Memory == models.MemoryShortTerm {
		deps = append(deps, "conversation buffer store")
	}
	if caps.Memory == models.MemoryLongTerm {
		deps = append(deps, "vector store")
	}
	if caps.FileAccess {
		deps = append(deps, "sandboxed filesystem layer")
	}
	if caps.WebAccess {
		deps = append(deps, "http fetch client with rate limiting")
	}
	if caps.CodeExecution {
		deps = append(deps, "isolated code execution runtime")
	}
	if caps.DataAnalysis {
		deps = append(deps, "dataframe/tabular processing library")
	}
	return deps
}

// mcpServers lists the MCP server stubs the agent should be wired to.
func mcpServers(caps *models.Capabilities) []string {
	servers := []string{}
	if caps.Memory != "" && caps.Memory != models.MemoryNone {
		servers = append(servers, "memory")
	}
	if caps.FileAccess {
		servers = append(servers, "filesystem")
	}
	if caps.WebAccess {
		servers = append(servers, "fetch")
	}
	for _, tool := range caps.ToolIntegrations {
		servers = append(servers, strings.ToLower(strings.ReplaceAll(tool, " ", "-")))
	}
	return servers
}

// toolConfigurations produces one configuration stub per requested tool
// integration.
func toolConfigurations(caps *models.Capabilities) []string {
	configs := []string{}
	for _, tool := range caps.ToolIntegrations {
		configs = append(configs, fmt.Sprintf("%s: configure credentials and scope before first run", tool))
	}
	return configs
}

// implementationSteps seeds the checklist from the template's planning
// content and appends profile-specific steps in a fixed order.
func implementationSteps(tmpl models.Template, profile models.RequirementsProfile, caps *models.Capabilities) []string {
	steps := make([]string, 0, len(tmpl.PlanningChecklist)+4)
	steps = append(steps, tmpl.PlanningChecklist...)

	if caps.Memory != "" && caps.Memory != models.MemoryNone {
		steps = append(steps, fmt.Sprintf("Set up %s memory storage and retention policy", caps.Memory))
	}
	if caps.CodeExecution {
		steps = append(steps, "Provision an isolated execution sandbox with resource limits")
	}
	for _, tool := range caps.ToolIntegrations {
		steps = append(steps, fmt.Sprintf("Wire and test the %s integration", tool))
	}
	if profile.Environment != nil {
		steps = append(steps, fmt.Sprintf("Prepare the %s deployment target", profile.Environment.Runtime))
	}
	if len(profile.SuccessMetrics) > 0 {
		steps = append(steps, fmt.Sprintf("Instrument success metrics: %s", strings.Join(profile.SuccessMetrics, ", ")))
	}
	return steps
}

// complexity buckets the enabled capability count into low/medium/high.
func complexity(caps *models.Capabilities) models.Complexity {
	count := caps.EnabledCount()
	switch {
	case count <= lowComplexityMax:
		return models.ComplexityLow
	case count <= mediumComplexityMax:
		return models.ComplexityMedium
	default:
		return models.ComplexityHigh
	}
}

// notes explains why this template won, reusing the classifier's reasoning.
func notes(tmpl models.Template, top models.TemplateScore) string {
	return fmt.Sprintf("Selected %s (score %.0f): %s", tmpl.Name, top.Score, top.Reasoning)
}

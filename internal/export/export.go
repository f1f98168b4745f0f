// Package export renders a finished agent recommendation to Markdown and
// HTML documents. It consumes the recommendation and profile read-only and
// never reaches back into classification.
package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/harrison/foundry/internal/filelock"
	"github.com/harrison/foundry/internal/models"
)

// Markdown renders the recommendation as a Markdown document, folding in the
// winning template's pre-authored document sections.
func Markdown(rec *models.AgentRecommendation, profile models.RequirementsProfile, tmpl models.Template) string {
	var sb strings.Builder

	name := profile.Name
	if name == "" {
		name = tmpl.Name
	}
	fmt.Fprintf(&sb, "# %s — Implementation Plan\n\n", name)
	fmt.Fprintf(&sb, "**Archetype:** %s  \n", tmpl.Name)
	fmt.Fprintf(&sb, "**Estimated complexity:** %s\n\n", rec.EstimatedComplexity)

	if rec.Notes != "" {
		fmt.Fprintf(&sb, "> %s\n\n", rec.Notes)
	}

	if profile.PrimaryOutcome != "" {
		sb.WriteString("## Goal\n\n")
		fmt.Fprintf(&sb, "%s\n\n", profile.PrimaryOutcome)
	}

	sb.WriteString("## System Prompt\n\n")
	fmt.Fprintf(&sb, "```\n%s```\n\n", rec.SystemPrompt)

	writeList(&sb, "## Required Dependencies", rec.RequiredDependencies)
	writeList(&sb, "## MCP Servers", rec.MCPServers)
	writeList(&sb, "## Tool Configurations", rec.ToolConfigurations)

	if len(rec.ImplementationSteps) > 0 {
		sb.WriteString("## Implementation Steps\n\n")
		for i, step := range rec.ImplementationSteps {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "## Architecture Patterns", tmpl.ArchitecturePatterns)
	writeList(&sb, "## Risks", tmpl.RiskConsiderations)
	writeList(&sb, "## Success Criteria", tmpl.SuccessCriteria)

	// Stable section order regardless of map iteration.
	keys := make([]string, 0, len(tmpl.DocumentSections))
	for key := range tmpl.DocumentSections {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		section := tmpl.DocumentSections[key]
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", section.Title, section.Body)
	}

	return sb.String()
}

// HTML converts the Markdown rendering to HTML.
func HTML(rec *models.AgentRecommendation, profile models.RequirementsProfile, tmpl models.Template) ([]byte, error) {
	md := Markdown(rec, profile, tmpl)
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFiles writes the Markdown and HTML documents for one session into
// dir, returning the paths written. Writes are atomic so a partially
// exported document is never left behind.
func WriteFiles(dir, sessionID string, rec *models.AgentRecommendation, profile models.RequirementsProfile, tmpl models.Template) ([]string, error) {
	md := Markdown(rec, profile, tmpl)
	html, err := HTML(rec, profile, tmpl)
	if err != nil {
		return nil, err
	}

	mdPath := filepath.Join(dir, fmt.Sprintf("recommendation-%s.md", sessionID))
	htmlPath := filepath.Join(dir, fmt.Sprintf("recommendation-%s.html", sessionID))

	if err := filelock.AtomicWrite(mdPath, []byte(md)); err != nil {
		return nil, fmt.Errorf("write markdown export: %w", err)
	}
	if err := filelock.AtomicWrite(htmlPath, html); err != nil {
		return nil, fmt.Errorf("write html export: %w", err)
	}

	return []string{mdPath, htmlPath}, nil
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + "\n\n")
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}

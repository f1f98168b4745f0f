package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/foundry/internal/catalog"
	"github.com/harrison/foundry/internal/interview"
	"github.com/harrison/foundry/internal/models"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the embedded question and template catalogs",
		Long: `Parse and validate the embedded catalogs, checking for:
  - Question validation (ids, prompts, options for choice questions)
  - Duplicate question and template ids
  - Every question id covered by a derivation rule
  - Template capability tags drawn from the known tag vocabulary

Exit code: 0 if valid, 1 if errors found`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateCatalogs(cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// knownTags is the capability tag vocabulary templates may declare.
var knownTags = map[string]bool{
	models.TagMemory:          true,
	models.TagFileAccess:      true,
	models.TagWebAccess:       true,
	models.TagCodeExecution:   true,
	models.TagDataAnalysis:    true,
	models.TagToolIntegration: true,
}

// validateCatalogs checks catalog integrity and the derivation rule binding.
func validateCatalogs(output io.Writer) error {
	var errors []string

	cat, err := catalog.Load()
	if err != nil {
		fmt.Fprintf(output, "✗ Failed to load catalogs\n  Error: %v\n", err)
		return fmt.Errorf("catalog load error: %w", err)
	}

	fmt.Fprintf(output, "✓ Parsed %d questions across %d stages\n",
		cat.TotalQuestions(), len(models.StageOrder))
	fmt.Fprintf(output, "✓ Parsed %d templates\n", len(cat.Templates()))

	// Every question must have a derivation rule, otherwise its answer
	// would never reach the requirements profile.
	uncovered := interview.UncoveredQuestions(cat)
	if len(uncovered) == 0 {
		fmt.Fprintf(output, "✓ Every question is bound to a derivation rule\n")
	} else {
		for _, id := range uncovered {
			errors = append(errors, fmt.Sprintf("question %s has no derivation rule", id))
		}
	}

	// Template tags outside the vocabulary can never match a profile.
	tagErrors := 0
	for _, tmpl := range cat.Templates() {
		for _, tag := range tmpl.CapabilityTags {
			if !knownTags[tag] {
				errors = append(errors, fmt.Sprintf("template %s: unknown capability tag %q", tmpl.ID, tag))
				tagErrors++
			}
		}
	}
	if tagErrors == 0 {
		fmt.Fprintf(output, "✓ All template capability tags are known\n")
	}

	if len(errors) == 0 {
		fmt.Fprintf(output, "\n✓ Catalogs are valid!\n")
		return nil
	}

	fmt.Fprintf(output, "\n✗ Validation failed\n")
	for _, errMsg := range errors {
		fmt.Fprintf(output, "  ✗ %s\n", errMsg)
	}
	fmt.Fprintf(output, "\nFound %d validation error(s)!\n", len(errors))

	return fmt.Errorf("validation failed with %d error(s)", len(errors))
}

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/foundry/internal/assemble"
	"github.com/harrison/foundry/internal/catalog"
	"github.com/harrison/foundry/internal/classify"
	"github.com/harrison/foundry/internal/config"
	"github.com/harrison/foundry/internal/filelock"
	"github.com/harrison/foundry/internal/interview"
	"github.com/harrison/foundry/internal/logger"
	"github.com/harrison/foundry/internal/models"
	"github.com/harrison/foundry/internal/store"
)

// NewInterviewCommand creates and returns the interview subcommand
func NewInterviewCommand() *cobra.Command {
	var resumeID string

	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Run the staged agent interview",
		Long: `Run the interactive interview. Answer each question, or use:
  /skip         skip an optional question
  /back         return to the previous question
  /goto <id>    jump to a question to review or edit its answer
  /quit         stop; progress is saved and can be resumed later

Boolean questions accept y/n; multiselect questions accept comma-separated
option numbers or names.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runInterview(cmd.InOrStdin(), cmd.OutOrStdout(), configPath, resumeID)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&resumeID, "resume", "", "resume a session by id, or \"last\" for the most recent")

	return cmd
}

// runInterview wires the collaborators together and drives the interview
// loop until completion or /quit.
func runInterview(in io.Reader, out io.Writer, configPath, resumeID string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	log := logger.NewConsoleLogger(os.Stderr, cfg.LogLevel)

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	guard := filelock.NewDBGuard(cfg.DBPath)
	acquired, err := guard.TryAcquire()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another foundry process is using %s", cfg.DBPath)
	}
	defer guard.Release()

	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	outbox := store.NewOutbox(st, log)
	defer outbox.Close()

	engine, err := openEngine(cat, st, outbox, resumeID)
	if err != nil {
		return err
	}

	if err := interviewLoop(in, out, cat, engine, outbox); err != nil {
		return err
	}

	if !engine.IsComplete() {
		fmt.Fprintf(out, "\nProgress saved. Resume with: foundry interview --resume %s\n", engine.SessionID())
		return nil
	}

	return finishInterview(out, cat, engine)
}

// openEngine starts a fresh session or resumes a persisted one.
func openEngine(cat *catalog.Catalog, st *store.Store, outbox *store.Outbox, resumeID string) (*interview.Engine, error) {
	if resumeID == "" {
		return interview.NewEngine(cat, outbox), nil
	}

	ctx := context.Background()
	var session *models.Session
	var err error
	if resumeID == "last" {
		session, err = st.LoadLatest(ctx)
	} else {
		session, err = st.Load(ctx, resumeID)
	}
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("no session found for %q", resumeID)
	}
	return interview.Resume(cat, session, outbox)
}

// interviewLoop prompts for one question at a time until the interview
// completes or the user quits.
func interviewLoop(in io.Reader, out io.Writer, cat *catalog.Catalog, engine *interview.Engine, outbox *store.Outbox) error {
	scanner := bufio.NewScanner(in)
	var lastStage models.Stage

	for !engine.IsComplete() {
		q := engine.CurrentQuestion()
		if q == nil {
			break
		}

		if q.Stage != lastStage {
			printStageHeader(out, q.Stage, engine, cat)
			lastStage = q.Stage
		}

		printQuestion(out, q, engine)

		if !scanner.Scan() {
			return scanner.Err() // EOF saves and exits
		}
		input := strings.TrimSpace(scanner.Text())

		switch {
		case input == "/quit":
			return nil
		case input == "/skip":
			if err := engine.Skip(); err != nil {
				fmt.Fprintf(out, "  %s\n", errorText(err))
			}
		case input == "/back":
			engine.GoBack()
			lastStage = ""
		case strings.HasPrefix(input, "/goto "):
			engine.NavigateTo(strings.TrimSpace(strings.TrimPrefix(input, "/goto ")))
			lastStage = ""
		case input == "":
			fmt.Fprintln(out, "  (enter an answer, or /skip, /back, /goto <id>, /quit)")
		default:
			value, err := parseAnswer(q, input)
			if err != nil {
				fmt.Fprintf(out, "  %s\n", errorText(err))
				continue
			}
			if err := engine.RecordResponse(q.ID, value); err != nil {
				fmt.Fprintf(out, "  %s\n", errorText(err))
			}
		}

		if unsynced, _ := outbox.Unsynced(); unsynced {
			fmt.Fprintln(out, color.YellowString("  ⚠ progress not yet synced to disk"))
		}
	}
	return nil
}

// printStageHeader shows the stage name, progress, and the live archetype
// guess when there is one.
func printStageHeader(out io.Writer, stage models.Stage, engine *interview.Engine, cat *catalog.Catalog) {
	progress := engine.Progress()
	fmt.Fprintf(out, "\n%s %s\n", color.CyanString("==="), color.CyanString(strings.ToUpper(string(stage))))
	fmt.Fprintf(out, "Progress: %d/%d questions (%d%%)\n", progress.Answered, progress.Total, progress.Percentage)

	guess := classify.PartialArchetype(engine.Profile(), progress.Answered, cat.Templates())
	if guess.TemplateID != "" {
		fmt.Fprintf(out, "Leaning toward: %s (%.0f%% confidence)\n", guess.Name, guess.Confidence)
	}
	fmt.Fprintln(out)
}

// printQuestion shows the prompt, hint, options, and any prior answer.
func printQuestion(out io.Writer, q *models.Question, engine *interview.Engine) {
	required := ""
	if !q.Required {
		required = color.New(color.Faint).Sprint(" (optional)")
	}
	fmt.Fprintf(out, "%s%s\n", color.New(color.Bold).Sprint(q.Prompt), required)
	if q.Hint != "" {
		fmt.Fprintf(out, "  %s\n", color.New(color.Faint).Sprint(q.Hint))
	}
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
	}
	if prev, ok := engine.Session().Responses.Get(q.ID); ok {
		fmt.Fprintf(out, "  current answer: %s\n", formatValue(prev))
	}
	fmt.Fprint(out, "> ")
}

// parseAnswer converts raw terminal input into the typed response value the
// question expects. Choice and multiselect answers accept option numbers or
// option text.
func parseAnswer(q *models.Question, input string) (models.ResponseValue, error) {
	switch q.Type {
	case models.QuestionText:
		return models.TextValue(input), nil

	case models.QuestionBoolean:
		switch strings.ToLower(input) {
		case "y", "yes", "true":
			return models.BoolValue(true), nil
		case "n", "no", "false":
			return models.BoolValue(false), nil
		}
		return models.ResponseValue{}, fmt.Errorf("answer y or n")

	case models.QuestionChoice:
		opt, err := resolveOption(q.Options, input)
		if err != nil {
			return models.ResponseValue{}, err
		}
		return models.TextValue(opt), nil

	case models.QuestionMultiSelect:
		parts := strings.Split(input, ",")
		var selected []string
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			opt, err := resolveOption(q.Options, part)
			if err != nil {
				return models.ResponseValue{}, err
			}
			selected = append(selected, opt)
		}
		return models.ListValue(selected...), nil
	}
	return models.ResponseValue{}, fmt.Errorf("unknown question type %q", q.Type)
}

// resolveOption maps a 1-based option number or case-insensitive option
// text to the canonical option string.
func resolveOption(options []string, input string) (string, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(options) {
			return "", fmt.Errorf("choose a number between 1 and %d", len(options))
		}
		return options[n-1], nil
	}
	for _, opt := range options {
		if strings.EqualFold(opt, input) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%q is not one of the options", input)
}

func formatValue(v models.ResponseValue) string {
	switch v.Kind {
	case models.ResponseBool:
		if v.Bool {
			return "yes"
		}
		return "no"
	case models.ResponseList:
		return strings.Join(v.List, ", ")
	default:
		return v.Text
	}
}

func errorText(err error) string {
	if errors.Is(err, interview.ErrRequiredQuestion) {
		return color.YellowString("this question is required and cannot be skipped")
	}
	return color.RedString(err.Error())
}

// finishInterview runs final classification and assembly, attaches the
// recommendation to the session, and prints the result.
func finishInterview(out io.Writer, cat *catalog.Catalog, engine *interview.Engine) error {
	profile := engine.Profile()

	result, err := classify.Classify(profile, cat.Templates())
	if err != nil {
		return fmt.Errorf("classify profile: %w", err)
	}

	winner, ok := cat.TemplateByID(result.PrimaryRecommendation)
	if !ok {
		return fmt.Errorf("winning template %q not in catalog", result.PrimaryRecommendation)
	}

	rec := assemble.Build(winner, profile, result.Scores[0])
	engine.AttachRecommendation(rec)

	printResult(out, result, cat, rec, engine.SessionID())
	return nil
}

// printResult renders the ranked scores and the recommendation summary.
func printResult(out io.Writer, result *models.ClassificationResult, cat *catalog.Catalog, rec *models.AgentRecommendation, sessionID string) {
	fmt.Fprintf(out, "\n%s\n\n", color.GreenString("=== RECOMMENDATION ==="))

	for i, score := range result.Scores {
		tmpl, _ := cat.TemplateByID(score.TemplateID)
		marker := "  "
		if i == 0 {
			marker = color.GreenString("▶ ")
		}
		fmt.Fprintf(out, "%s%-28s %5.1f  %s\n", marker, tmpl.Name, score.Score, score.Reasoning)
	}

	fmt.Fprintf(out, "\nConfidence: %.0f%%\n", result.Confidence)
	fmt.Fprintf(out, "Estimated complexity: %s\n", rec.EstimatedComplexity)

	if len(rec.ImplementationSteps) > 0 {
		fmt.Fprintln(out, "\nImplementation steps:")
		for i, step := range rec.ImplementationSteps {
			fmt.Fprintf(out, "  %d. %s\n", i+1, step)
		}
	}

	fmt.Fprintf(out, "\nExport the full plan with: foundry export %s\n", sessionID)
}

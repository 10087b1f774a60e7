package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/logger"
)

var submitJSON bool

var submitCmd = &cobra.Command{
	Use:   "submit [file]",
	Short: "Triage one document",
	Long: `Extracts the text of a document and sends it to the triage service.

Plain text, Markdown, HTML, DOCX and PDF files are supported. The result
lists the document type, the extracted clauses and the flagged risks.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().BoolVar(&submitJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(submitCmd)
}

// resultJSON is the machine-readable form of a triage result.
type resultJSON struct {
	Document string          `json:"document"`
	Type     *string         `json:"type"`
	Clauses  []domain.Clause `json:"clauses"`
	Risks    []domain.Risk   `json:"risks"`
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if triageService == nil {
		return errNotConfigured("triage")
	}

	upload := domain.NewUpload(args[0])
	logger.Debug("submit: %s", upload.Path)

	snap, err := triageService.Submit(cmd.Context(), upload)
	if err != nil {
		return &submitError{name: upload.DisplayName(), err: err}
	}

	if submitJSON {
		return outputResultJSON(cmd, upload.DisplayName(), snap.Result)
	}
	outputResultText(cmd, upload.DisplayName(), snap.Result)
	return nil
}

// submitError reports a failed submission with the user-facing message
// while keeping the triage error reachable through errors.Is.
type submitError struct {
	name string
	err  error
}

func (e *submitError) Error() string {
	if te, ok := domain.AsTriageError(e.err); ok {
		return e.name + ": " + te.UserMessage()
	}
	return e.name + ": " + e.err.Error()
}

func (e *submitError) Unwrap() error {
	return e.err
}

func outputResultJSON(cmd *cobra.Command, name string, result *domain.TriageResult) error {
	out := resultJSON{Document: name, Clauses: []domain.Clause{}, Risks: []domain.Risk{}}
	if result != nil {
		out.Type = result.DocumentType
		out.Clauses = append(out.Clauses, result.Clauses...)
		out.Risks = append(out.Risks, result.Risks...)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResultText(cmd *cobra.Command, name string, result *domain.TriageResult) {
	if result == nil {
		cmd.Printf("%s: no result\n", name)
		return
	}

	cmd.Printf("Document: %s\n", name)
	cmd.Printf("Type:     %s\n", describeType(result))
	cmd.Println()

	cmd.Printf("Clauses (%d):\n", len(result.Clauses))
	if len(result.Clauses) == 0 {
		cmd.Println("  none")
	}
	for i, clause := range result.Clauses {
		title := clause.Title
		if title == "" {
			title = "Untitled clause"
		}
		cmd.Printf("  %d. %s\n", i+1, title)
		if clause.Body != "" {
			cmd.Printf("     %s\n", clause.Body)
		}
	}
	cmd.Println()

	cmd.Printf("Risks (%d):\n", len(result.Risks))
	if !result.HasRisks() {
		cmd.Println("  none flagged")
	}
	for _, risk := range result.Risks {
		cmd.Printf("  [%s] %s\n", riskLabel(risk), risk.Description)
		if risk.Explanation != "" {
			cmd.Printf("      %s\n", risk.Explanation)
		}
	}
}

// describeType renders the classification, which may be absent or blank.
func describeType(result *domain.TriageResult) string {
	switch {
	case !result.HasClassification():
		return "(not classified)"
	case result.Classification() == "":
		return "(blank classification)"
	default:
		return result.Classification()
	}
}

// riskLabel prefers the service's own tag when the level is unrecognised.
func riskLabel(risk domain.Risk) string {
	if risk.Level == domain.RiskUnknown && risk.RawLevel != "" {
		return strings.ToUpper(risk.RawLevel)
	}
	return strings.ToUpper(risk.Level.String())
}

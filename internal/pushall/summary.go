package pushall

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/temirov/pushall/internal/gitrepo"
)

const (
	unsupportedSummaryFormatTemplateConstant = "%w %q (expected none, text or yaml)"
	unsupportedSummaryFormatMessageConstant  = "unsupported summary format"
	summaryEncodingErrorTemplateConstant     = "failed to encode summary: %w"
	summaryHeaderSubmoduleConstant           = "SUBMODULE"
	summaryHeaderOutcomeConstant             = "OUTCOME"
	summaryHeaderBranchConstant              = "BRANCH"
	summaryHeaderRemoteConstant              = "REMOTE"
	summaryEmptyCellConstant                 = "-"
	summaryWarningsTemplateConstant          = "warnings: %d\n"
	summaryDryRunLineConstant                = "dry run: no changes were made\n"
	summaryLineTerminatorConstant            = "\n"
)

// SummaryFormat selects how RenderSummary prints a Result.
type SummaryFormat string

// Supported summary formats.
const (
	SummaryFormatNone SummaryFormat = "none"
	SummaryFormatText SummaryFormat = "text"
	SummaryFormatYAML SummaryFormat = "yaml"
)

// ErrUnsupportedSummaryFormat indicates an unknown summary format.
var ErrUnsupportedSummaryFormat = errors.New(unsupportedSummaryFormatMessageConstant)

// SummaryFormats lists the accepted format names.
func SummaryFormats() []string {
	return []string{string(SummaryFormatNone), string(SummaryFormatText), string(SummaryFormatYAML)}
}

// ParseSummaryFormat validates raw; blank input selects SummaryFormatNone.
func ParseSummaryFormat(raw string) (SummaryFormat, error) {
	normalizedFormat := SummaryFormat(strings.ToLower(strings.TrimSpace(raw)))
	switch normalizedFormat {
	case "", SummaryFormatNone:
		return SummaryFormatNone, nil
	case SummaryFormatText, SummaryFormatYAML:
		return normalizedFormat, nil
	default:
		return "", fmt.Errorf(unsupportedSummaryFormatTemplateConstant, ErrUnsupportedSummaryFormat, raw)
	}
}

type summaryDocument struct {
	SuperProjectRoot string              `yaml:"superproject_root"`
	CommitMessage    string              `yaml:"commit_message"`
	DryRun           bool                `yaml:"dry_run"`
	Submodules       []submoduleSummary  `yaml:"submodules"`
	SuperProject     superProjectSummary `yaml:"superproject"`
	Warnings         []string            `yaml:"warnings,omitempty"`
}

type submoduleSummary struct {
	Name          string   `yaml:"name"`
	Path          string   `yaml:"path"`
	Outcome       string   `yaml:"outcome"`
	Branch        string   `yaml:"branch,omitempty"`
	CreatedBranch string   `yaml:"created_branch,omitempty"`
	Committed     bool     `yaml:"committed"`
	Pushed        bool     `yaml:"pushed"`
	PushURL       string   `yaml:"push_url,omitempty"`
	Ownership     string   `yaml:"ownership,omitempty"`
	Notes         []string `yaml:"notes,omitempty"`
	Error         string   `yaml:"error,omitempty"`
}

type superProjectSummary struct {
	Outcome   string `yaml:"outcome"`
	Committed bool   `yaml:"committed"`
	Pushed    bool   `yaml:"pushed"`
	Error     string `yaml:"error,omitempty"`
}

// RenderSummary writes result to writer in the requested format.
func RenderSummary(writer io.Writer, result Result, format SummaryFormat) error {
	switch format {
	case "", SummaryFormatNone:
		return nil
	case SummaryFormatText:
		return renderTextSummary(writer, result)
	case SummaryFormatYAML:
		return renderYAMLSummary(writer, result)
	default:
		return fmt.Errorf(unsupportedSummaryFormatTemplateConstant, ErrUnsupportedSummaryFormat, string(format))
	}
}

func renderTextSummary(writer io.Writer, result Result) error {
	rows := make([][]string, 0, len(result.Submodules)+1)
	for _, submoduleResult := range result.Submodules {
		rows = append(rows, []string{
			submoduleResult.Path,
			string(submoduleResult.Outcome),
			valueOrPlaceholder(submoduleBranch(submoduleResult)),
			valueOrPlaceholder(describePushURL(submoduleResult.Ownership.PushURL)),
		})
	}
	rows = append(rows, []string{
		superProjectLabelConstant,
		string(result.SuperProject.Outcome),
		summaryEmptyCellConstant,
		summaryEmptyCellConstant,
	})

	summaryTable := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(summaryHeaderSubmoduleConstant, summaryHeaderOutcomeConstant, summaryHeaderBranchConstant, summaryHeaderRemoteConstant).
		Rows(rows...)

	var builder strings.Builder
	builder.WriteString(summaryTable.String())
	builder.WriteString(summaryLineTerminatorConstant)
	if result.DryRun {
		builder.WriteString(summaryDryRunLineConstant)
	}
	if len(result.Warnings) > 0 {
		builder.WriteString(fmt.Sprintf(summaryWarningsTemplateConstant, len(result.Warnings)))
	}
	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

func renderYAMLSummary(writer io.Writer, result Result) error {
	document := summaryDocument{
		SuperProjectRoot: result.SuperProjectRoot,
		CommitMessage:    result.CommitMessage,
		DryRun:           result.DryRun,
		Submodules:       make([]submoduleSummary, 0, len(result.Submodules)),
		SuperProject: superProjectSummary{
			Outcome:   string(result.SuperProject.Outcome),
			Committed: result.SuperProject.Committed,
			Pushed:    result.SuperProject.Pushed,
			Error:     errorText(result.SuperProject.Err),
		},
		Warnings: result.Warnings,
	}
	for _, submoduleResult := range result.Submodules {
		document.Submodules = append(document.Submodules, submoduleSummary{
			Name:          submoduleResult.Name,
			Path:          submoduleResult.Path,
			Outcome:       string(submoduleResult.Outcome),
			Branch:        submoduleResult.State.CurrentBranch,
			CreatedBranch: submoduleResult.CreatedBranch,
			Committed:     submoduleResult.Committed,
			Pushed:        submoduleResult.Pushed,
			PushURL:       submoduleResult.Ownership.PushURL,
			Ownership:     submoduleResult.Ownership.Reason,
			Notes:         submoduleResult.Notes,
			Error:         errorText(submoduleResult.Err),
		})
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return fmt.Errorf(summaryEncodingErrorTemplateConstant, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(summaryEncodingErrorTemplateConstant, closeError)
	}
	return nil
}

func submoduleBranch(submoduleResult SubmoduleResult) string {
	if len(submoduleResult.CreatedBranch) > 0 {
		return submoduleResult.CreatedBranch
	}
	return submoduleResult.State.CurrentBranch
}

func describePushURL(pushURL string) string {
	if len(strings.TrimSpace(pushURL)) == 0 {
		return ""
	}
	return gitrepo.DescribeRemote(pushURL)
}

func valueOrPlaceholder(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return summaryEmptyCellConstant
	}
	return value
}

func errorText(summaryError error) string {
	if summaryError == nil {
		return ""
	}
	return summaryError.Error()
}

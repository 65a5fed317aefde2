package flags

import (
	"errors"
	"fmt"
	"strings"
)

const (
	choicePlaceholderPrefix        = "<"
	choicePlaceholderSuffix        = ">"
	choiceSeparatorLiteral         = "|"
	choiceUsageEmptyTemplate       = "`%s`"
	choiceUsageFullTemplate        = "`%s` %s"
	choiceValueTypeName            = "string"
	unsupportedChoiceMessage       = "unsupported value"
	unsupportedChoiceErrorTemplate = "%w %q (expected one of %s)"
	unsupportedChoiceListSeparator = ", "
)

// ErrUnsupportedChoice indicates a flag value outside the accepted choices.
var ErrUnsupportedChoice = errors.New(unsupportedChoiceMessage)

// ChoiceValue is a pflag.Value accepting one of a fixed set of case-insensitive choices.
type ChoiceValue struct {
	defaultChoice string
	choices       []string
	selected      string
}

// NewChoiceValue constructs a ChoiceValue preset to defaultChoice.
func NewChoiceValue(defaultChoice string, choices []string) *ChoiceValue {
	normalizedChoices := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		normalizedChoices = append(normalizedChoices, normalizedChoice)
	}
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	return &ChoiceValue{defaultChoice: normalizedDefault, choices: normalizedChoices, selected: normalizedDefault}
}

// String returns the selected choice.
func (value *ChoiceValue) String() string {
	if value == nil {
		return ""
	}
	return value.selected
}

// Set validates raw against the accepted choices.
func (value *ChoiceValue) Set(raw string) error {
	normalizedChoice := strings.ToLower(strings.TrimSpace(raw))
	for _, choice := range value.choices {
		if choice == normalizedChoice {
			value.selected = choice
			return nil
		}
	}
	return fmt.Errorf(unsupportedChoiceErrorTemplate, ErrUnsupportedChoice, raw, strings.Join(value.choices, unsupportedChoiceListSeparator))
}

// Type names the flag value type for help output.
func (value *ChoiceValue) Type() string {
	return choiceValueTypeName
}

// Usage formats description with the accepted choices, the default capitalized.
func (value *ChoiceValue) Usage(description string) string {
	return FormatChoiceUsage(value.defaultChoice, value.choices, description)
}

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := choicePlaceholderPrefix + strings.Join(highlightDefaultChoice(defaultChoice, choices), choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		normalizedChoice := strings.ToLower(trimmedChoice)
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			trimmedChoice = strings.ToUpper(trimmedChoice)
		}
		highlighted = append(highlighted, trimmedChoice)
	}

	return highlighted
}

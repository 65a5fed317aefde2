package pushall

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const (
	invalidOwnerPatternTemplateConstant = "invalid owner pattern %q: %w"

	// OwnershipReasonNoRemote explains a decision for a repository without an origin push URL.
	OwnershipReasonNoRemote = "no origin remote"
	// OwnershipReasonUnconfigured explains a decision made without an owner pattern.
	OwnershipReasonUnconfigured = "owner pattern not configured"
	// OwnershipReasonMatched explains a decision for a push URL matching the owner pattern.
	OwnershipReasonMatched = "push URL matches owner pattern"
	// OwnershipReasonNotMatched explains a decision for a push URL outside the owner pattern.
	OwnershipReasonNotMatched = "push URL does not match owner pattern"
)

// OwnerPattern is a compiled regular expression matched against push URLs, e.g. `github\.com[:/]acme/`.
// The zero value matches nothing.
type OwnerPattern struct {
	expression *regexp.Regexp
}

// ParseOwnerPattern compiles raw; blank input yields the zero OwnerPattern.
func ParseOwnerPattern(raw string) (OwnerPattern, error) {
	trimmedPattern := strings.TrimSpace(raw)
	if len(trimmedPattern) == 0 {
		return OwnerPattern{}, nil
	}
	compiledExpression, compileError := regexp.Compile(trimmedPattern)
	if compileError != nil {
		return OwnerPattern{}, fmt.Errorf(invalidOwnerPatternTemplateConstant, trimmedPattern, compileError)
	}
	return OwnerPattern{expression: compiledExpression}, nil
}

// IsZero reports whether no pattern is configured.
func (pattern OwnerPattern) IsZero() bool {
	return pattern.expression == nil
}

// MatchString reports whether pushURL matches the pattern.
func (pattern OwnerPattern) MatchString(pushURL string) bool {
	if pattern.expression == nil {
		return false
	}
	return pattern.expression.MatchString(pushURL)
}

// String returns the source expression.
func (pattern OwnerPattern) String() string {
	if pattern.expression == nil {
		return ""
	}
	return pattern.expression.String()
}

// OwnerPatternDecodeHook converts configuration strings into OwnerPattern values.
func OwnerPatternDecodeHook() mapstructure.DecodeHookFuncType {
	ownerPatternType := reflect.TypeOf(OwnerPattern{})
	return func(sourceType reflect.Type, targetType reflect.Type, data any) (any, error) {
		if targetType != ownerPatternType || sourceType.Kind() != reflect.String {
			return data, nil
		}
		parsedPattern, parseError := ParseOwnerPattern(reflect.ValueOf(data).String())
		if parseError != nil {
			return nil, parseError
		}
		return parsedPattern, nil
	}
}

// OwnershipDecision records whether a repository may be pushed and why.
type OwnershipDecision struct {
	Eligible bool
	PushURL  string
	Reason   string
}

// OwnershipPolicy decides push eligibility from a push URL.
type OwnershipPolicy interface {
	Decide(pushURL string) OwnershipDecision
}

// PatternOwnershipPolicy accepts push URLs matching an OwnerPattern.
type PatternOwnershipPolicy struct {
	pattern OwnerPattern
}

// NewPatternOwnershipPolicy constructs a policy backed by pattern.
func NewPatternOwnershipPolicy(pattern OwnerPattern) PatternOwnershipPolicy {
	return PatternOwnershipPolicy{pattern: pattern}
}

// Decide implements OwnershipPolicy.
func (policy PatternOwnershipPolicy) Decide(pushURL string) OwnershipDecision {
	trimmedURL := strings.TrimSpace(pushURL)
	switch {
	case len(trimmedURL) == 0:
		return OwnershipDecision{Reason: OwnershipReasonNoRemote}
	case policy.pattern.IsZero():
		return OwnershipDecision{PushURL: trimmedURL, Reason: OwnershipReasonUnconfigured}
	case policy.pattern.MatchString(trimmedURL):
		return OwnershipDecision{Eligible: true, PushURL: trimmedURL, Reason: OwnershipReasonMatched}
	default:
		return OwnershipDecision{PushURL: trimmedURL, Reason: OwnershipReasonNotMatched}
	}
}

package regnfa

import (
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Case is one pattern with inputs that must and must not match it.
type Case struct {
	Pattern string   `json:"pattern"`
	Match   []string `json:"match,omitempty"`
	NoMatch []string `json:"noMatch,omitempty"`
	// Error, when set, is the error kind Compile must fail with, e.g.
	// "unbalanced grouping".
	Error string `json:"error,omitempty"`
}

// CaseFailure describes one expectation a Case did not meet.
type CaseFailure struct {
	Pattern string
	Input   string // unset when the pattern itself failed
	Reason  string
	Compile bool
}

func (f CaseFailure) String() string {
	if f.Compile {
		return fmt.Sprintf("%q: %s", f.Pattern, f.Reason)
	}
	return fmt.Sprintf("%q on %q: %s", f.Pattern, f.Input, f.Reason)
}

// LoadCases reads a YAML list of cases.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cases: %w", err)
	}
	var cases []Case
	if err := yaml.UnmarshalStrict(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse cases %s: %w", path, err)
	}
	return cases, nil
}

// Run compiles the case with opts (its Pattern is replaced) and checks
// every expectation.
func (c Case) Run(opts Options) []CaseFailure {
	opts.Pattern = c.Pattern
	re, err := CompileWithOptions(opts)
	if err != nil {
		var perr *Error
		if c.Error != "" && errors.As(err, &perr) && perr.Kind.Error() == c.Error {
			return nil
		}
		return []CaseFailure{{Pattern: c.Pattern, Reason: err.Error(), Compile: true}}
	}
	if c.Error != "" {
		return []CaseFailure{{Pattern: c.Pattern, Reason: "compiled, want " + c.Error, Compile: true}}
	}

	var failures []CaseFailure
	for _, in := range c.Match {
		if !re.MatchString(in) {
			failures = append(failures, CaseFailure{Pattern: c.Pattern, Input: in, Reason: "no match"})
		}
	}
	for _, in := range c.NoMatch {
		if re.MatchString(in) {
			failures = append(failures, CaseFailure{Pattern: c.Pattern, Input: in, Reason: "unexpected match"})
		}
	}
	return failures
}

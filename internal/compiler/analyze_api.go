package compiler

import (
	"sort"
	"strings"

	"github.com/KromDaniel/regnfa/internal/nfa"
	"github.com/KromDaniel/regnfa/internal/syntax"
)

// AnalysisResult contains the results of pattern analysis without code generation.
type AnalysisResult struct {
	// FeatureLabels are derived from pattern structure (sorted alphabetically)
	FeatureLabels []string `json:"feature_labels"`

	// EngineLabels name the generated engine (sorted alphabetically)
	EngineLabels []string `json:"engine_labels"`

	Expanded        string `json:"expanded"`
	Postfix         string `json:"postfix"`
	NFAStates       int    `json:"nfa_states"`
	ConsumingStates int    `json:"consuming_states"`
	MatchesEmpty    bool   `json:"matches_empty"`
}

// AnalyzePattern performs pattern analysis and returns labels without generating code.
// It returns an error if the pattern is invalid.
func AnalyzePattern(pattern string, maxStates int) (*AnalysisResult, error) {
	postfix, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	n, err := nfa.BuildWithLimit(postfix, maxStates)
	if err != nil {
		return nil, err
	}
	infix, err := syntax.Expand(pattern)
	if err != nil {
		return nil, err
	}

	engine := "Bitset"
	if n.Len() > MaxBitsetStates {
		engine = "Table"
	}

	return &AnalysisResult{
		FeatureLabels:   deriveFeatureLabels(pattern),
		EngineLabels:    []string{engine},
		Expanded:        syntax.String(infix),
		Postfix:         syntax.String(postfix),
		NFAStates:       n.Len(),
		ConsumingStates: len(n.ConsumingStates()),
		MatchesEmpty:    n.MatchString(""),
	}, nil
}

// deriveFeatureLabels extracts feature labels from the pattern text. Bytes
// inside a bracketed class only count towards CharClass. The pattern must
// already have parsed.
func deriveFeatureLabels(pattern string) []string {
	seen := map[string]bool{}
	if pattern == "" {
		seen["Empty"] = true
	}

	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '[':
			seen["CharClass"] = true
			if end := strings.IndexByte(pattern[i+1:], ']'); end >= 0 {
				i += end + 1
			}
		case '|':
			seen["Alternation"] = true
		case '*', '+', '?':
			seen["Quantifiers"] = true
		case '{':
			seen["BoundedRepeat"] = true
		case '.':
			seen["Wildcard"] = true
		case '(':
			seen["Groups"] = true
		}
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

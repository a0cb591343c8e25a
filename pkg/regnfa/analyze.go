package regnfa

import (
	"fmt"

	"github.com/KromDaniel/regnfa/internal/compiler"
)

// AnalysisResult contains the results of pattern analysis without code generation.
// This is useful for determining which labels apply to a pattern for testing.
type AnalysisResult = compiler.AnalysisResult

// Analyze compiles pattern and reports its structure without generating code.
//
// The analysis returns:
//   - FeatureLabels: derived from pattern structure (e.g., "CharClass", "Quantifiers")
//   - EngineLabels: the engine Generate would choose ("Bitset" or "Table")
//
// Example:
//
//	result, err := regnfa.Analyze("[a-c]+x")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.FeatureLabels) // [CharClass Quantifiers]
//	fmt.Println(result.EngineLabels)  // [Bitset]
func Analyze(pattern string) (*AnalysisResult, error) {
	result, err := compiler.AnalyzePattern(pattern, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze pattern: %w", err)
	}
	return result, nil
}

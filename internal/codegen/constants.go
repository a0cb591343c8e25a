// Package codegen provides code generation helpers and constants.
package codegen

import "fmt"

// Variable names used in generated code
const (
	InputName        = "input"
	InputLenName     = "l"
	OffsetName       = "offset"
	CharName         = "c"
	CurrentName      = "current"
	NextName         = "next"
	MarkName         = "mark"
	StartClosureName = "startClosure"
	AcceptMaskName   = "acceptMask"
	ClosuresName     = "epsilonClosures"
	ScratchName      = "scratch"
	TypeParamName    = "T"
)

// StateComment returns the comment placed above the transition of a state.
func StateComment(id int32) string {
	return fmt.Sprintf("State %d", id)
}

// HelperName returns the name of a package-level helper derived from the
// generated type name, e.g. ("Email", "Match") -> "emailMatch".
func HelperName(typeName, suffix string) string {
	return LowerFirst(typeName) + UpperFirst(suffix)
}

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}

package perr

import "fmt"

// NewCannotFindMember builds the EvalError raised for an unresolved
// member read, with a "did you mean" hint built from knownNames via
// Suggest.
func NewCannotFindMember(key string, knownNames []string) *Exception {
	suggestions := Suggest(key, knownNames)
	hint := "(none)"
	switch {
	case len(suggestions) == 0:
		hint = "(none)"
	case len(knownNames) == 0:
		hint = "(none)"
	default:
		hint = formatSuggestions(suggestions)
	}
	return &Exception{
		Kind:    EvalError,
		Message: fmt.Sprintf("cannot find member %q", key),
		Member:  key,
		Hint:    hint,
	}
}

func formatSuggestions(names []string) string {
	out := "did you mean: "
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

// NewCannotFindStdLibModule builds the error the module cache raises for
// an unrecognized stdlib module key.
func NewCannotFindStdLibModule(key string) *Exception {
	return &Exception{Kind: EvalError, Message: fmt.Sprintf("cannot find standard library module %q", key)}
}

// NewIncompatiblePklVersion builds the error raised when a module declares
// a minPklVersion newer than the running core.
func NewIncompatiblePklVersion(moduleURI, required, actual string) *Exception {
	return &Exception{
		Kind: EvalError,
		Message: fmt.Sprintf(
			"module %s requires pkl version %s or newer, but this core reports %s",
			moduleURI, required, actual,
		),
	}
}

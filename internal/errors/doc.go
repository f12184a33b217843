// Package errors provides structured, actionable error messages for servo.
//
// Every well-known failure has a registered code (e.g. "E020") that maps to:
//   - A category (runtime, loader, protocol, config, cli)
//   - A short message describing the error
//   - A detailed explanation
//
// Errors created from a code pick those up automatically:
//
//	err := errors.New("E020").
//	    Wrap(fetchErr).
//	    WithSuggestion("check that the stylesheet URL is reachable")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E020: Stylesheet fetch failed
//	//
//	//   The loader could not retrieve the stylesheet body from the
//	//   resolved URL.
//	//
//	//   Hint: check that the stylesheet URL is reachable
//
// Formatting helpers render errors for terminal output (Format), logs
// (FormatCompact), or machine consumption (FormatJSON).
package errors

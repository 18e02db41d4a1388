// Package errors provides structured, actionable diagnostics for the
// inertia CLI.
//
// Library packages report failures through sentinel errors; this package
// is for the tooling surface, where an error should tell the developer
// which file is wrong, why, and how to fix it:
//   - Shows exact file locations (file, line, column)
//   - Explains what went wrong in plain language
//   - Suggests how to fix issues, with example snippets
//   - Links to documentation for deeper understanding
//
// # Error Categories
//
// Errors are organized into categories:
//   - config: inertia.json problems (missing, invalid, bad values)
//   - assets: build manifest and root template problems
//   - ssr: renderer bundle, process, and health problems
//   - cli: everything else the command line surfaces
//
// # Error Codes
//
// Each error has a unique code (e.g., "E100") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("E122").
//	    WithDetail("Entry \"src/main.tsx\" is not in dist/.vite/manifest.json").
//	    WithSuggestion("Check the entry field in inertia.json against your Vite config")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E122: Entry chunk missing from manifest
//	//
//	//   Entry "src/main.tsx" is not in dist/.vite/manifest.json
//	//
//	//   Hint: Check the entry field in inertia.json against your Vite config
//	//
//	//   Learn more: https://inertia-go.dev/errors/E122
//
// JSON parse failures can carry the offending position, so the formatted
// error points at the exact byte in inertia.json:
//
//	if err := json.Unmarshal(data, &cfg); err != nil {
//	    return errors.FromJSONError("E101", path, data, err)
//	}
package errors

package tokenfile

import (
	"errors"
	"os"
	"regexp"
	"strings"
)

// ErrAssignmentNotFound is returned when the JS file has no auth assignment.
var ErrAssignmentNotFound = errors.New(`no assignment to "auth" found in JS file (const/let/var auth = "...")`)

var (
	// jsReadPattern captures the double-quoted value of the first auth assignment.
	// The value may span lines and contain escaped quotes.
	jsReadPattern = regexp.MustCompile(`(?s)(?:const|let|var)\s+auth\s*=\s*"((?:[^"\\]|\\.)*)"\s*;`)

	// jsWritePattern matches the whole line of the first auth assignment.
	// Group 1 is everything up to and including "=", kept verbatim. Group 2
	// is the carriage return of a CRLF line ending, if any.
	jsWritePattern = regexp.MustCompile(
		`(?m)^([ \t]*(?:export[ \t]+)?(?:const|let|var)[ \t]+auth[ \t]*=[ \t]*)` +
			`(?:"(?:[^"\\\r\n]|\\.)*"|'(?:[^'\\\r\n]|\\.)*')[ \t]*;?[ \t]*(\r?)$`)

	jsEscaper   = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	jsUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)
)

// readJSToken returns the auth value of the JS file, or "" when the file is
// missing, unreadable or has no matching assignment.
func readJSToken(path string) string {
	data, err := os.ReadFile(path) // #nosec G304 -- configured path
	if err != nil {
		return ""
	}

	m := jsReadPattern.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return jsUnescaper.Replace(string(m[1]))
}

// renderJSToken replaces the value of the first auth assignment with a
// double-quoted, escaped token. Everything else in the file is untouched.
func renderJSToken(data []byte, token string) ([]byte, error) {
	loc := jsWritePattern.FindSubmatchIndex(data)
	if loc == nil {
		return nil, ErrAssignmentNotFound
	}

	lineStart, lineEnd := loc[0], loc[1]
	prefix := data[loc[2]:loc[3]]
	cr := data[loc[4]:loc[5]]

	var out []byte
	out = append(out, data[:lineStart]...)
	out = append(out, prefix...)
	out = append(out, '"')
	out = append(out, jsEscaper.Replace(token)...)
	out = append(out, '"', ';')
	out = append(out, cr...)
	out = append(out, data[lineEnd:]...)
	return out, nil
}

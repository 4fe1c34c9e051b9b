// Package command decodes the directives embedded in generated reply text.
//
// A directive is written as {NAME} or {NAME: param}. NAME is one or more
// ASCII letters or underscores and is reported upper-cased. Whitespace
// around NAME, the colon and the braces is ignored. The parameter runs up
// to the first closing brace and must not be empty. Anything that does not
// match this shape stays in the text untouched.
package command

import (
	"strings"
)

// Known command names.
const (
	Timer   = "TIMER"
	Clock   = "CLOCK"
	Weather = "WEATHER"
	Home    = "HOME"
	Music   = "MUSIC"
	Vibe    = "VIBE"
	Idle    = "IDLE"
)

// Command is one decoded directive. Name is upper-cased; Param is trimmed
// and empty when the directive had none.
type Command struct {
	Name  string `json:"name"`
	Param string `json:"param"`
}

// Decode extracts the directives found by a single left-to-right scan of
// text and returns the text with all directives removed and whitespace
// collapsed. Removing a directive can expose another one (as in "{A{B}}").
// Stripping repeats until the text is stable, but only the directives of
// the first scan are returned.
func Decode(text string) (string, []Command) {
	text, commands := extract(text)
	for {
		rest, found := extract(text)
		if len(found) == 0 {
			break
		}
		text = rest
	}
	return strings.Join(strings.Fields(text), " "), commands
}

// Clean returns text with all directives stripped.
func Clean(text string) string {
	clean, _ := Decode(text)
	return clean
}

// extract performs one left-to-right pass.
func extract(text string) (string, []Command) {
	var (
		b        strings.Builder
		commands []Command
		last     int
	)
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		cmd, end, ok := match(text, i)
		if !ok {
			continue
		}
		b.WriteString(text[last:i])
		commands = append(commands, cmd)
		last = end
		i = end - 1
	}
	if len(commands) == 0 {
		return text, nil
	}
	b.WriteString(text[last:])
	return b.String(), commands
}

// match tries to read a directive starting at the '{' at position start.
// It returns the directive and the index just past its closing brace.
func match(text string, start int) (Command, int, bool) {
	i := skipSpace(text, start+1)

	nameStart := i
	for i < len(text) && isNameByte(text[i]) {
		i++
	}
	if i == nameStart {
		return Command{}, 0, false
	}
	name := strings.ToUpper(text[nameStart:i])

	i = skipSpace(text, i)
	if i >= len(text) {
		return Command{}, 0, false
	}

	switch text[i] {
	case '}':
		return Command{Name: name}, i + 1, true
	case ':':
		i++
		end := strings.IndexByte(text[i:], '}')
		if end <= 0 {
			return Command{}, 0, false
		}
		param := strings.TrimSpace(text[i : i+end])
		return Command{Name: name, Param: param}, i + end + 1, true
	}
	return Command{}, 0, false
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func skipSpace(text string, i int) int {
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

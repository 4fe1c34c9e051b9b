package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantText string
		wantCmds []Command
	}{
		{
			name:     "home command",
			text:     "Включаю свет. {HOME: lamp on}",
			wantText: "Включаю свет.",
			wantCmds: []Command{{Name: Home, Param: "lamp on"}},
		},
		{
			name:     "no commands",
			text:     "  just   text\n here ",
			wantText: "just text here",
		},
		{
			name:     "bare command lower case",
			text:     "Спокойной ночи. {clock}",
			wantText: "Спокойной ночи.",
			wantCmds: []Command{{Name: Clock}},
		},
		{
			name:     "whitespace inside braces",
			text:     "x {  Timer  :   120   } y",
			wantText: "x y",
			wantCmds: []Command{{Name: Timer, Param: "120"}},
		},
		{
			name:     "multiple in order",
			text:     "{WEATHER} Погода. {TIMER: 60}{IDLE}",
			wantText: "Погода.",
			wantCmds: []Command{{Name: Weather}, {Name: Timer, Param: "60"}, {Name: Idle}},
		},
		{
			name:     "unknown command still reported",
			text:     "ok {FOO: bar}",
			wantText: "ok",
			wantCmds: []Command{{Name: "FOO", Param: "bar"}},
		},
		{
			name:     "music with pipe",
			text:     "Врубаю басы. {MUSIC: Numb | Linkin Park}",
			wantText: "Врубаю басы.",
			wantCmds: []Command{{Name: Music, Param: "Numb | Linkin Park"}},
		},
		{
			name:     "whitespace only param",
			text:     "a {TIMER: } b",
			wantText: "a b",
			wantCmds: []Command{{Name: Timer, Param: ""}},
		},
		{
			name:     "empty param is malformed",
			text:     "a {TIMER:} b",
			wantText: "a {TIMER:} b",
		},
		{
			name:     "unterminated brace",
			text:     "a {TIMER: 5 b",
			wantText: "a {TIMER: 5 b",
		},
		{
			name:     "stray closing brace",
			text:     "a } b",
			wantText: "a } b",
		},
		{
			name:     "space inside name",
			text:     "{HELLO WORLD}",
			wantText: "{HELLO WORLD}",
		},
		{
			name:     "digits are not names",
			text:     "{42}",
			wantText: "{42}",
		},
		{
			name:     "param stops at first closing brace",
			text:     "{HOME: a}b}",
			wantText: "b}",
			wantCmds: []Command{{Name: Home, Param: "a"}},
		},
		{
			name:     "exposed directive is stripped but not reported",
			text:     "x {A{B}} y",
			wantText: "x y",
			wantCmds: []Command{{Name: "B"}},
		},
		{
			name:     "deeply nested directives report innermost",
			text:     "{A{B{C}}} z",
			wantText: "z",
			wantCmds: []Command{{Name: "C"}},
		},
		{
			name:     "underscore name",
			text:     "{SMART_HOME}",
			wantText: "",
			wantCmds: []Command{{Name: "SMART_HOME"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, cmds := Decode(tt.text)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantCmds, cmds)
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Включаю свет. {HOME: lamp on}",
		"x {A{B}} y",
		"{{X}}",
		"a {TIMER:} {b} } {",
		"  \t{ CLOCK }\n\n text {MUSIC: a | b}  ",
		"{A{B{C}}}",
		"",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestDecode_TimerScenario(t *testing.T) {
	text, cmds := Decode("Ставлю таймер на 2 минуты. {TIMER: 120}")
	assert.Equal(t, "Ставлю таймер на 2 минуты.", text)
	assert.Equal(t, []Command{{Name: Timer, Param: "120"}}, cmds)
}

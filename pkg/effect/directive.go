// Package effect turns decoded commands into state changes and device
// side effects.
package effect

import (
	"strconv"
	"strings"

	"github.com/urmzd/umaai/pkg/command"
)

// Directive is a classified command. The concrete types below are the only
// implementations.
type Directive interface {
	directive()
}

// SetTimer starts a countdown of Seconds (> 0).
type SetTimer struct{ Seconds int }

// ShowClock switches to the night clock.
type ShowClock struct{}

// ShowWeather switches to the weather screen.
type ShowWeather struct{}

// SwitchDevice shows a device status and, for on/off, drives the device.
type SwitchDevice struct {
	Device string
	Status string
}

// PlayMusic shows the now-playing screen.
type PlayMusic struct {
	Title  string
	Artist string
}

// ShowVibe opens the photo frame at the first image.
type ShowVibe struct{}

// GoIdle returns to the idle face.
type GoIdle struct{}

// Unknown is a command name outside the known set.
type Unknown struct {
	Name  string
	Param string
}

// Invalid is a known command whose parameter could not be used.
type Invalid struct {
	Name   string
	Param  string
	Reason string
}

func (SetTimer) directive()     {}
func (ShowClock) directive()    {}
func (ShowWeather) directive()  {}
func (SwitchDevice) directive() {}
func (PlayMusic) directive()    {}
func (ShowVibe) directive()     {}
func (GoIdle) directive()       {}
func (Unknown) directive()      {}
func (Invalid) directive()      {}

// OnOff reports the requested power state when Status is on or off.
func (d SwitchDevice) OnOff() (on bool, ok bool) {
	switch strings.ToLower(d.Status) {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	return false, false
}

// Classify maps a decoded command to its directive.
func Classify(cmd command.Command) Directive {
	switch cmd.Name {
	case command.Timer:
		n, ok := leadingInt(cmd.Param)
		if !ok || n <= 0 {
			return Invalid{Name: cmd.Name, Param: cmd.Param, Reason: "seconds must be a positive integer"}
		}
		return SetTimer{Seconds: n}
	case command.Clock:
		return ShowClock{}
	case command.Weather:
		return ShowWeather{}
	case command.Home:
		parts := strings.Fields(cmd.Param)
		if len(parts) < 2 {
			return Invalid{Name: cmd.Name, Param: cmd.Param, Reason: "expected <device> <status>"}
		}
		return SwitchDevice{Device: parts[0], Status: parts[1]}
	case command.Music:
		title, artist, _ := strings.Cut(cmd.Param, "|")
		if i := strings.IndexByte(artist, '|'); i >= 0 {
			artist = artist[:i]
		}
		return PlayMusic{Title: strings.TrimSpace(title), Artist: strings.TrimSpace(artist)}
	case command.Vibe:
		return ShowVibe{}
	case command.Idle:
		return GoIdle{}
	}
	return Unknown{Name: cmd.Name, Param: cmd.Param}
}

// ClassifyAll classifies cmds preserving order.
func ClassifyAll(cmds []command.Command) []Directive {
	out := make([]Directive, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, Classify(cmd))
	}
	return out
}

// leadingInt reads an optionally signed run of digits at the start of s,
// ignoring leading whitespace and anything after the digits ("90 sec" is 90).
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

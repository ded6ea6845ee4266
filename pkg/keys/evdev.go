// Package keys converts hotkey shorthand strings into evdev key events for
// the controller host's OS plugin.
package keys

import (
	"fmt"
	"strings"
)

// Evdev keycodes from linux/input-event-codes.h.
const (
	keyLeftCtrl  = 29
	keyLeftShift = 42
	keyLeftAlt   = 56
	keySpace     = 57
)

// Letter keycodes are not alphabetically sequential.
var letterCodes = map[rune]int{
	'a': 30, 'b': 48, 'c': 46, 'd': 32, 'e': 18, 'f': 33, 'g': 34,
	'h': 35, 'i': 23, 'j': 36, 'k': 37, 'l': 38, 'm': 50, 'n': 49,
	'o': 24, 'p': 25, 'q': 16, 'r': 19, 's': 31, 't': 20, 'u': 22,
	'v': 47, 'w': 17, 'x': 45, 'y': 21, 'z': 44,
}

var digitCodes = map[rune]int{
	'1': 2, '2': 3, '3': 4, '4': 5, '5': 6,
	'6': 7, '7': 8, '8': 9, '9': 10, '0': 11,
}

var punctCodes = map[rune]int{
	'-': 12, '=': 13, '[': 26, ']': 27, ';': 39,
	'\'': 40, '`': 41, '\\': 43, ',': 51, '.': 52, '/': 53,
}

// Shifted punctuation sits on the same physical key but needs Shift held.
var shiftedPunct = map[rune]int{
	'!': 2, '@': 3, '#': 4, '$': 5, '%': 6,
	'^': 7, '&': 8, '*': 9, '(': 10, ')': 11,
	'_': 12, '+': 13, '{': 26, '}': 27, ':': 39,
	'"': 40, '~': 41, '|': 43, '<': 51, '>': 52, '?': 53,
}

type charKey struct {
	code  int
	shift bool
}

var charToKey = buildCharMap()

func buildCharMap() map[rune]charKey {
	m := make(map[rune]charKey)
	for ch, code := range letterCodes {
		m[ch] = charKey{code: code}
		m[ch+'A'-'a'] = charKey{code: code, shift: true}
	}
	for ch, code := range digitCodes {
		m[ch] = charKey{code: code}
	}
	for ch, code := range punctCodes {
		m[ch] = charKey{code: code}
	}
	for ch, code := range shiftedPunct {
		m[ch] = charKey{code: code, shift: true}
	}
	return m
}

var namedKeys = buildNamedMap()

func buildNamedMap() map[string]int {
	m := map[string]int{
		"Ctrl": keyLeftCtrl, "Control": keyLeftCtrl,
		"Shift": keyLeftShift,
		"Alt":   keyLeftAlt,
		"SPACE": keySpace, "Space": keySpace,
		"Enter": 28, "Return": 28,
		"Tab":       15,
		"Backspace": 14,
		"Escape":    1, "Esc": 1,
		"Delete": 111,
		"Insert": 110,
		"Home":   102, "End": 107,
		"PageUp":   104,
		"PageDown": 109,
		"Up":       103, "Down": 108, "Left": 105, "Right": 106,
		"F1": 59, "F2": 60, "F3": 61, "F4": 62, "F5": 63, "F6": 64,
		"F7": 65, "F8": 66, "F9": 67, "F10": 68, "F11": 87, "F12": 88,
		"F13": 183, "F14": 184, "F15": 185, "F16": 186, "F17": 187, "F18": 188,
		"F19": 189, "F20": 190, "F21": 191, "F22": 192, "F23": 193, "F24": 194,
		"Super": 125, "Meta": 125,
		"CapsLock": 58, "PrintScreen": 99, "ScrollLock": 70, "Pause": 119,
		"Copy": 133, "Paste": 135, "Cut": 137,
		"Mute":       113,
		"VolumeDown": 114, "VolumeUp": 115,
		"Play":     164,
		"Stop":     166,
		"Previous": 165,
		"Next":     163,
		"`":        41, "Grave": 41,
	}

	// Bare letter and digit names are allowed in combos, e.g. "Ctrl+C".
	for ch, code := range letterCodes {
		upper := string(ch + 'A' - 'a')
		if _, ok := m[upper]; !ok {
			m[upper] = code
		}
		if _, ok := m[string(ch)]; !ok {
			m[string(ch)] = code
		}
	}
	for ch, code := range digitCodes {
		if _, ok := m[string(ch)]; !ok {
			m[string(ch)] = code
		}
	}

	return m
}

// Event is one key press (State 1) or release (State 0).
type Event struct {
	Code  int
	State int
}

func press(code int) Event   { return Event{Code: code, State: 1} }
func release(code int) Event { return Event{Code: code, State: 0} }

// FromShorthand expands a shorthand string into key events. The string is
// split on spaces and each token is either the SPACE marker, a modifier
// combo like "Ctrl+Shift+T", or literal characters to type (uppercase and
// shifted punctuation get a surrounding Shift press).
func FromShorthand(s string) ([]Event, error) {
	var events []Event

	for _, token := range strings.Fields(s) {
		switch {
		case token == "SPACE":
			events = append(events, press(keySpace), release(keySpace))

		case strings.Contains(token, "+") && token != "+":
			combo, err := comboEvents(token)
			if err != nil {
				return nil, err
			}
			events = append(events, combo...)

		default:
			for _, ch := range token {
				key, ok := charToKey[ch]
				if !ok {
					return nil, fmt.Errorf("cannot type character %q", ch)
				}
				if key.shift {
					events = append(events, press(keyLeftShift))
				}
				events = append(events, press(key.code), release(key.code))
				if key.shift {
					events = append(events, release(keyLeftShift))
				}
			}
		}
	}

	return events, nil
}

// comboEvents expands "Ctrl+Shift+T": press modifiers in order, tap the
// final key, release modifiers in reverse.
func comboEvents(token string) ([]Event, error) {
	parts := strings.Split(token, "+")
	final := parts[len(parts)-1]
	modifiers := parts[:len(parts)-1]

	var events []Event
	modCodes := make([]int, 0, len(modifiers))
	for _, m := range modifiers {
		code, ok := namedKeys[m]
		if !ok {
			return nil, fmt.Errorf("unknown key name %q", m)
		}
		modCodes = append(modCodes, code)
	}

	finalCode, ok := namedKeys[final]
	if !ok {
		return nil, fmt.Errorf("unknown key name %q", final)
	}

	for _, code := range modCodes {
		events = append(events, press(code))
	}
	events = append(events, press(finalCode), release(finalCode))
	for i := len(modCodes) - 1; i >= 0; i-- {
		events = append(events, release(modCodes[i]))
	}

	return events, nil
}

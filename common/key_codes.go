package common

import (
	"fmt"
	"strings"
)

// Key is a virtual key code. Values match GLFW key codes, which use ASCII values for
// printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key uint32

// MouseButton is a mouse button index. Values match GLFW mouse button indices.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#MouseButton
type MouseButton uint8

const (
	KeyW         Key = 87  // W key (ASCII)
	KeyA         Key = 65  // A key (ASCII)
	KeyS         Key = 83  // S key (ASCII)
	KeyD         Key = 68  // D key (ASCII)
	KeyQ         Key = 81  // Q key (ASCII)
	KeyE         Key = 69  // E key (ASCII)
	KeyR         Key = 82  // R key (ASCII)
	KeyF         Key = 70  // F key (ASCII)
	KeyZ         Key = 90  // Z key (ASCII)
	KeyX         Key = 88  // X key (ASCII)
	KeySpace     Key = 32  // Spacebar (ASCII)
	KeyMinus     Key = 45  // Minus key (ASCII)
	KeyEqual     Key = 61  // Equal key (ASCII)
	KeyEsc       Key = 256 // Escape key (GLFW)
	KeyBackspace Key = 259 // Backspace key (GLFW)
	KeyRight     Key = 262 // Right arrow (GLFW)
	KeyLeft      Key = 263 // Left arrow (GLFW)
	KeyDown      Key = 264 // Down arrow (GLFW)
	KeyUp        Key = 265 // Up arrow (GLFW)
	KeyPageUp    Key = 266 // Page up (GLFW)
	KeyPageDown  Key = 267 // Page down (GLFW)
)

// Modifier keys
const (
	KeyLeftShift    Key = 340 // Left Shift (GLFW)
	KeyLeftControl  Key = 341 // Left Control (GLFW)
	KeyLeftAlt      Key = 342 // Left Alt (GLFW)
	KeyRightShift   Key = 344 // Right Shift (GLFW)
	KeyRightControl Key = 345 // Right Control (GLFW)
	KeyRightAlt     Key = 346 // Right Alt (GLFW)
)

const (
	MouseButtonLeft   MouseButton = 0 // GLFW MouseButton1
	MouseButtonRight  MouseButton = 1 // GLFW MouseButton2
	MouseButtonMiddle MouseButton = 2 // GLFW MouseButton3
)

var keyNames = map[string]Key{
	"w": KeyW, "a": KeyA, "s": KeyS, "d": KeyD, "q": KeyQ, "e": KeyE,
	"r": KeyR, "f": KeyF, "z": KeyZ, "x": KeyX,
	"space":     KeySpace,
	"minus":     KeyMinus,
	"equal":     KeyEqual,
	"escape":    KeyEsc,
	"backspace": KeyBackspace,
	"right":     KeyRight,
	"left":      KeyLeft,
	"down":      KeyDown,
	"up":        KeyUp,
	"pageup":    KeyPageUp,
	"pagedown":  KeyPageDown,
	"lshift":    KeyLeftShift,
	"lctrl":     KeyLeftControl,
	"lalt":      KeyLeftAlt,
	"rshift":    KeyRightShift,
	"rctrl":     KeyRightControl,
	"ralt":      KeyRightAlt,
}

var buttonNames = map[string]MouseButton{
	"left":   MouseButtonLeft,
	"right":  MouseButtonRight,
	"middle": MouseButtonMiddle,
}

// ParseKey resolves a key name as used in configuration files (case-insensitive).
//
// Parameters:
//   - name: key name such as "q", "lshift" or "pageup"
//
// Returns:
//   - Key: the key code
//   - error: error if the name is unknown
func ParseKey(name string) (Key, error) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}

// ParseMouseButton resolves a mouse button name ("left", "right" or "middle").
//
// Parameters:
//   - name: button name
//
// Returns:
//   - MouseButton: the button index
//   - error: error if the name is unknown
func ParseMouseButton(name string) (MouseButton, error) {
	b, ok := buttonNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown mouse button %q", name)
	}
	return b, nil
}

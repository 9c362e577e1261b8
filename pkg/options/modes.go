package options

import (
	"fmt"
	"strings"
)

// InputMode selects the USB protocol the controller presents to the host
type InputMode uint8

const (
	InputModeXInput   InputMode = 0
	InputModeSwitch   InputMode = 1
	InputModeHID      InputMode = 2
	InputModeKeyboard InputMode = 3
	InputModeConfig   InputMode = 255
)

var inputModeNames = map[InputMode]string{
	InputModeXInput:   "xinput",
	InputModeSwitch:   "switch",
	InputModeHID:      "hid",
	InputModeKeyboard: "keyboard",
	InputModeConfig:   "config",
}

func (m InputMode) String() string {
	return enumName(inputModeNames, m)
}

// ParseInputMode converts a lowercase mode name into an InputMode
func ParseInputMode(s string) (InputMode, error) {
	return parseEnum(inputModeNames, "input mode", s)
}

// DpadMode selects how the directional pad is reported
type DpadMode uint8

const (
	DpadModeDigital     DpadMode = 0
	DpadModeLeftAnalog  DpadMode = 1
	DpadModeRightAnalog DpadMode = 2
)

var dpadModeNames = map[DpadMode]string{
	DpadModeDigital:     "digital",
	DpadModeLeftAnalog:  "left_analog",
	DpadModeRightAnalog: "right_analog",
}

func (m DpadMode) String() string {
	return enumName(dpadModeNames, m)
}

// ParseDpadMode converts a lowercase mode name into a DpadMode
func ParseDpadMode(s string) (DpadMode, error) {
	return parseEnum(dpadModeNames, "dpad mode", s)
}

// SOCDMode selects how simultaneous opposing cardinal directions are cleaned
type SOCDMode uint8

const (
	SOCDModeUpPriority          SOCDMode = 0
	SOCDModeNeutral             SOCDMode = 1
	SOCDModeSecondInputPriority SOCDMode = 2
)

var socdModeNames = map[SOCDMode]string{
	SOCDModeUpPriority:          "up_priority",
	SOCDModeNeutral:             "neutral",
	SOCDModeSecondInputPriority: "second_input_priority",
}

func (m SOCDMode) String() string {
	return enumName(socdModeNames, m)
}

// ParseSOCDMode converts a lowercase mode name into a SOCDMode
func ParseSOCDMode(s string) (SOCDMode, error) {
	return parseEnum(socdModeNames, "socd mode", s)
}

// ButtonLayout is the physical arrangement of the buttons
type ButtonLayout uint8

const (
	ButtonLayoutArcade ButtonLayout = 0
	ButtonLayoutHitbox ButtonLayout = 1
	ButtonLayoutWASD   ButtonLayout = 2
)

var buttonLayoutNames = map[ButtonLayout]string{
	ButtonLayoutArcade: "arcade",
	ButtonLayoutHitbox: "hitbox",
	ButtonLayoutWASD:   "wasd",
}

func (l ButtonLayout) String() string {
	return enumName(buttonLayoutNames, l)
}

// LEDFormat is the color byte order expected by the LED strip
type LEDFormat uint8

const (
	LEDFormatGRB  LEDFormat = 0
	LEDFormatRGB  LEDFormat = 1
	LEDFormatGRBW LEDFormat = 2
	LEDFormatRGBW LEDFormat = 3
)

var ledFormatNames = map[LEDFormat]string{
	LEDFormatGRB:  "grb",
	LEDFormatRGB:  "rgb",
	LEDFormatGRBW: "grbw",
	LEDFormatRGBW: "rgbw",
}

func (f LEDFormat) String() string {
	return enumName(ledFormatNames, f)
}

func enumName[E ~uint8](names map[E]string, v E) string {
	if name, ok := names[v]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(v))
}

func parseEnum[E ~uint8](names map[E]string, kind, s string) (E, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for v, name := range names {
		if name == want {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown %s: %q", kind, s)
}

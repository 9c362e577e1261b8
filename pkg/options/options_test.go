package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/codec"
)

func TestRecordSizes(t *testing.T) {
	assert.Equal(t, 4, codec.Size[GamepadOptions]())
	assert.Equal(t, 32, codec.Size[BoardOptions]())
	assert.Equal(t, 82, codec.Size[LEDOptions]())
	assert.Equal(t, 13, codec.Size[AnimationOptions]())
}

func TestIntegrityFieldOffsets(t *testing.T) {
	gamepad, err := codec.NewRecordCodec[GamepadOptions]()
	require.NoError(t, err)
	blob, err := gamepad.Encode(GamepadOptions{IsSet: true})
	require.NoError(t, err)
	assert.Equal(t, byte(1), blob[GamepadIsSetOffset])

	animation, err := codec.NewRecordCodec[AnimationOptions]()
	require.NoError(t, err)
	blob, err = animation.Encode(AnimationOptions{Checksum: 0x11223344})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, blob[AnimationChecksumOffset:AnimationChecksumOffset+codec.ChecksumSize])
}

func TestDefaultGamepadOptions(t *testing.T) {
	opts := DefaultGamepadOptions(DefaultSOCDMode)

	assert.False(t, opts.IsSet)
	assert.Equal(t, InputModeXInput, opts.InputMode)
	assert.Equal(t, DpadModeDigital, opts.DpadMode)
	assert.Equal(t, SOCDModeNeutral, opts.SOCDMode)

	assert.Equal(t, SOCDModeUpPriority, DefaultGamepadOptions(SOCDModeUpPriority).SOCDMode)
}

func TestDefaultAnimationOptions(t *testing.T) {
	opts := DefaultAnimationOptions()

	assert.Equal(t, AnimationOptions{
		Checksum:           0,
		BaseAnimationIndex: 1,
		Brightness:         75,
		StaticColorIndex:   2,
		ButtonColorIndex:   1,
		ChaseCycleTime:     85,
		RainbowCycleTime:   40,
		ThemeIndex:         0,
	}, opts)
}

func TestModeNames(t *testing.T) {
	testCases := []struct {
		name     string
		value    interface{ String() string }
		expected string
	}{
		{name: "xinput", value: InputModeXInput, expected: "xinput"},
		{name: "config", value: InputModeConfig, expected: "config"},
		{name: "unknown input", value: InputMode(42), expected: "unknown(42)"},
		{name: "left analog", value: DpadModeLeftAnalog, expected: "left_analog"},
		{name: "neutral", value: SOCDModeNeutral, expected: "neutral"},
		{name: "second input", value: SOCDModeSecondInputPriority, expected: "second_input_priority"},
		{name: "hitbox", value: ButtonLayoutHitbox, expected: "hitbox"},
		{name: "grbw", value: LEDFormatGRBW, expected: "grbw"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.value.String())
		})
	}
}

func TestParseModes(t *testing.T) {
	socd, err := ParseSOCDMode("Up_Priority")
	require.NoError(t, err)
	assert.Equal(t, SOCDModeUpPriority, socd)

	input, err := ParseInputMode(" switch ")
	require.NoError(t, err)
	assert.Equal(t, InputModeSwitch, input)

	dpad, err := ParseDpadMode("right_analog")
	require.NoError(t, err)
	assert.Equal(t, DpadModeRightAnalog, dpad)

	_, err = ParseSOCDMode("last_win")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown socd mode")
}

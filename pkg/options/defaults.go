package options

// Animation defaults applied when the stored animation record is invalid
const (
	DefaultBaseAnimationIndex uint8 = 1
	DefaultBrightness         uint8 = 75
	DefaultStaticColorIndex   uint8 = 2
	DefaultButtonColorIndex   uint8 = 1
	DefaultChaseCycleTime     int16 = 85
	DefaultRainbowCycleTime   int16 = 40
	DefaultThemeIndex         uint8 = 0
)

// DefaultSOCDMode is used when no override is configured
const DefaultSOCDMode = SOCDModeNeutral

// DefaultGamepadOptions returns the gamepad record served while the slot has
// never been written. IsSet stays false so the record is not mistaken for a
// stored one.
func DefaultGamepadOptions(socd SOCDMode) GamepadOptions {
	return GamepadOptions{
		IsSet:     false,
		InputMode: InputModeXInput,
		DpadMode:  DpadModeDigital,
		SOCDMode:  socd,
	}
}

// DefaultAnimationOptions returns the animation record written when the
// stored record fails its checksum.
func DefaultAnimationOptions() AnimationOptions {
	return AnimationOptions{
		BaseAnimationIndex: DefaultBaseAnimationIndex,
		Brightness:         DefaultBrightness,
		StaticColorIndex:   DefaultStaticColorIndex,
		ButtonColorIndex:   DefaultButtonColorIndex,
		ChaseCycleTime:     DefaultChaseCycleTime,
		RainbowCycleTime:   DefaultRainbowCycleTime,
		ThemeIndex:         DefaultThemeIndex,
	}
}

package options

// Byte offsets of the integrity fields inside the encoded records
const (
	GamepadIsSetOffset      = 0
	AnimationChecksumOffset = 0
)

// GamepadOptions holds the user-selected gamepad behaviour. IsSet marks a
// record that has been written at least once.
type GamepadOptions struct {
	IsSet     bool
	InputMode InputMode
	DpadMode  DpadMode
	SOCDMode  SOCDMode
}

// BoardOptions holds the GPIO pin mapping and peripheral wiring of the board.
// A zero HasBoardOptions means the board uses its built-in mapping.
type BoardOptions struct {
	HasBoardOptions bool

	PinDpadUp    uint8
	PinDpadDown  uint8
	PinDpadLeft  uint8
	PinDpadRight uint8
	PinButtonB1  uint8
	PinButtonB2  uint8
	PinButtonB3  uint8
	PinButtonB4  uint8
	PinButtonL1  uint8
	PinButtonR1  uint8
	PinButtonL2  uint8
	PinButtonR2  uint8
	PinButtonS1  uint8
	PinButtonS2  uint8
	PinButtonL3  uint8
	PinButtonR3  uint8
	PinButtonA1  uint8
	PinButtonA2  uint8

	ButtonLayout ButtonLayout

	I2CSDAPin uint8
	I2CSCLPin uint8
	I2CBlock  uint8
	I2CSpeed  uint32

	HasI2CDisplay     bool
	DisplayI2CAddress uint8
	DisplaySize       uint8
	DisplayFlip       uint8
	DisplayInvert     bool
}

// LEDOptions holds the RGB LED strip wiring. Index fields are positions on
// the strip, -1 for a button without an LED.
type LEDOptions struct {
	UseUserDefinedLEDs bool
	DataPin            int32
	LEDFormat          LEDFormat
	LEDLayout          ButtonLayout
	LEDsPerButton      uint8
	BrightnessMaximum  uint8
	BrightnessSteps    uint8

	IndexUp    int32
	IndexDown  int32
	IndexLeft  int32
	IndexRight int32
	IndexB1    int32
	IndexB2    int32
	IndexB3    int32
	IndexB4    int32
	IndexL1    int32
	IndexR1    int32
	IndexL2    int32
	IndexR2    int32
	IndexS1    int32
	IndexS2    int32
	IndexL3    int32
	IndexR3    int32
	IndexA1    int32
	IndexA2    int32
}

// AnimationOptions is the persisted state of the LED animation engine.
// Checksum is managed by the storage layer; records handed out by storage
// always carry a zero Checksum.
type AnimationOptions struct {
	Checksum           uint32
	BaseAnimationIndex uint8
	Brightness         uint8
	StaticColorIndex   uint8
	ButtonColorIndex   uint8
	ChaseCycleTime     int16
	RainbowCycleTime   int16
	ThemeIndex         uint8
}

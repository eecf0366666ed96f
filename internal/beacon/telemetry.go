package beacon

import (
	"fmt"
	"math"
)

// Analog conversion coefficients from the BOTAN telemetry definition sheet.
const (
	batVoltsPerCount = 0.025781

	batCurrentSlope  = -50.045
	batCurrentOffset = 6330.4

	// Battery temperature thermistor network: counts to a voltage-divider
	// ratio, then Steinhart-Hart style log conversion.
	batTempVoltsPerCount = 0.01289
	batTempSupplyVolts   = 3.3
	batTempNumerator     = 1185000.0
	batTempLogGain       = 298.0
	batTempLogOffset     = 3976.0
	kelvinOffset         = 273.0

	boardTempDiscBase      = 36.44506
	boardTempDiscPerCount  = 0.06875
	boardTempSqrtOffset    = 5.506
	boardTempScale         = 0.00352
	boardTempBase          = 30.0

	rawCurrentSlope  = 51.84
	rawCurrentOffset = 1950.9
)

// Mission identifies the currently running mission, reported in bits 1-0 of
// the mission status byte.
type Mission uint8

const (
	MissionNone  Mission = 0
	MissionEarth Mission = 1
	MissionSun   Mission = 2
	// 0b11 is reserved by the beacon protocol; it decodes as MissionUnknown
	// rather than failing.
	MissionUnknown Mission = 3
)

// String returns the mission name used in beacon reports.
func (m Mission) String() string {
	switch m {
	case MissionNone:
		return "None"
	case MissionEarth:
		return "Earth"
	case MissionSun:
		return "Sun"
	default:
		return "Unknown"
	}
}

// PowerStatus holds the power system flags of payload byte 5, one flag per
// bit, most significant bit first.
type PowerStatus struct {
	Power5V0    bool // bit 7: 5V power line
	PowerDepAnt bool // bit 6: antenna deployment power line
	PowerCom    bool // bit 5: transponder power line
	SapXPos     bool // bit 4: +X solar panel generating
	SapYPos     bool // bit 3: +Y solar panel generating
	SapYNeg     bool // bit 2: -Y solar panel generating
	SapZPos     bool // bit 1: +Z solar panel generating
	SapZNeg     bool // bit 0: -Z solar panel generating
}

// Byte reconstructs the source byte from the eight flags.
func (p PowerStatus) Byte() byte {
	var b byte
	if p.Power5V0 {
		b |= 0x80
	}
	if p.PowerDepAnt {
		b |= 0x40
	}
	if p.PowerCom {
		b |= 0x20
	}
	if p.SapXPos {
		b |= 0x10
	}
	if p.SapYPos {
		b |= 0x08
	}
	if p.SapYNeg {
		b |= 0x04
	}
	if p.SapZPos {
		b |= 0x02
	}
	if p.SapZNeg {
		b |= 0x01
	}
	return b
}

// CommandStatus holds the command counters and KILL switch state of payload
// byte 6.
type CommandStatus struct {
	ReserveCmdCounter uint8 // bits 7-4, masked to 3 bits
	CmdUplinkCounter  uint8 // bits 3-1
	KillSw            bool  // bit 0
}

// MissionStatus holds the mission flags of payload byte 7.
type MissionStatus struct {
	KillCounter  uint8   // bits 7-6: KILL switch occurrence count
	MissionPicOn bool    // bit 5
	MisErrorFlag bool    // bit 4
	MisEndFlag   bool    // bit 3
	AprsFlag     bool    // bit 2: APRS mission executing
	CurrentMis   Mission // bits 1-0, permissive: 0b11 decodes as Unknown
}

// TelemetryRecord is the decoded 8-byte telemetry block. Each analog channel
// is a pure function of exactly one payload byte.
type TelemetryRecord struct {
	BatteryVoltage     float64       // byte 0 [V]
	BatteryCurrent     float64       // byte 1 [mA]
	BatteryTemp        float64       // byte 2 [degC]
	BoardTemp          float64       // byte 3 [degC]
	CurrentConsumption float64       // byte 4 [mA]
	Power              PowerStatus   // byte 5
	Command            CommandStatus // byte 6
	Mission            MissionStatus // byte 7
}

// DecodeTelemetry converts an 8-byte payload into a TelemetryRecord.
// The two temperature channels carry domain preconditions that are checked
// explicitly before the transcendental call; decoding stops at the first
// failure in byte order and reports only that failure.
func DecodeTelemetry(payload []byte) (*TelemetryRecord, error) {
	if len(payload) != PayloadSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidByteCount, PayloadSize, len(payload))
	}

	rec := &TelemetryRecord{
		BatteryVoltage:     float64(payload[0]) * batVoltsPerCount,
		BatteryCurrent:     float64(payload[1])*batCurrentSlope + batCurrentOffset,
		CurrentConsumption: float64(payload[4])*rawCurrentSlope - rawCurrentOffset,
	}

	batT, err := batteryTemp(payload[2])
	if err != nil {
		return nil, err
	}
	rec.BatteryTemp = batT

	boardT, err := boardTemp(payload[3])
	if err != nil {
		return nil, err
	}
	rec.BoardTemp = boardT

	rec.Power = decodePowerStatus(payload[5])
	rec.Command = decodeCommandStatus(payload[6])
	rec.Mission = decodeMissionStatus(payload[7])

	return rec, nil
}

// batteryTemp converts byte 2 through the thermistor log formula. The ratio
// must be strictly positive for the logarithm to be defined; for a raw byte
// that only fails at zero counts, since 255*0.01289 stays below the 3.3 V
// supply.
func batteryTemp(count byte) (float64, error) {
	volts := float64(count) * batTempVoltsPerCount
	ratio := volts / (batTempSupplyVolts - volts)
	if ratio <= 0 {
		return 0, fmt.Errorf("%w: battery temperature ratio %g requires a positive logarithm argument (byte 0x%02X)",
			ErrOutOfDomain, ratio, count)
	}
	return batTempNumerator/(math.Log(ratio)*batTempLogGain+batTempLogOffset) - kelvinOffset, nil
}

// boardTemp converts byte 3 through the square-root formula. The
// discriminant is non-negative for every byte value 0-255; the check guards
// the contract rather than a reachable state.
func boardTemp(count byte) (float64, error) {
	disc := boardTempDiscBase - float64(count)*boardTempDiscPerCount
	if disc < 0 {
		return 0, fmt.Errorf("%w: board temperature discriminant %g is negative (byte 0x%02X)",
			ErrOutOfDomain, disc, count)
	}
	return boardTempBase - (math.Sqrt(disc)-boardTempSqrtOffset)/boardTempScale, nil
}

func decodePowerStatus(b byte) PowerStatus {
	return PowerStatus{
		Power5V0:    b&0x80 != 0,
		PowerDepAnt: b&0x40 != 0,
		PowerCom:    b&0x20 != 0,
		SapXPos:     b&0x10 != 0,
		SapYPos:     b&0x08 != 0,
		SapYNeg:     b&0x04 != 0,
		SapZPos:     b&0x02 != 0,
		SapZNeg:     b&0x01 != 0,
	}
}

func decodeCommandStatus(b byte) CommandStatus {
	return CommandStatus{
		ReserveCmdCounter: (b >> 4) & 0x07,
		CmdUplinkCounter:  (b >> 1) & 0x07,
		KillSw:            b&0x01 != 0,
	}
}

func decodeMissionStatus(b byte) MissionStatus {
	return MissionStatus{
		KillCounter:  (b >> 6) & 0x03,
		MissionPicOn: b&0x20 != 0,
		MisErrorFlag: b&0x10 != 0,
		MisEndFlag:   b&0x08 != 0,
		AprsFlag:     b&0x04 != 0,
		CurrentMis:   Mission(b & 0x03),
	}
}

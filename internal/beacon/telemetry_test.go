package beacon

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDecodeTelemetryAnalogChannels(t *testing.T) {
	// BOTAN JS1YPT A57EB76823210E08
	payload := []byte{0xA5, 0x7E, 0xB7, 0x68, 0x23, 0x21, 0x0E, 0x08}

	rec, err := DecodeTelemetry(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Byte 0xA5 = 165: 165 * 0.025781 ≈ 4.254 V
	if math.Abs(rec.BatteryVoltage-4.254) > 0.01 {
		t.Errorf("BatteryVoltage = %v, want ≈4.254", rec.BatteryVoltage)
	}

	// Byte 0x7E = 126: 126 * -50.045 + 6330.4
	wantCurrent := 126*-50.045 + 6330.4
	if math.Abs(rec.BatteryCurrent-wantCurrent) > 1e-9 {
		t.Errorf("BatteryCurrent = %v, want %v", rec.BatteryCurrent, wantCurrent)
	}

	// Byte 0x23 = 35: 35 * 51.84 - 1950.9
	wantRaw := 35*51.84 - 1950.9
	if math.Abs(rec.CurrentConsumption-wantRaw) > 1e-9 {
		t.Errorf("CurrentConsumption = %v, want %v", rec.CurrentConsumption, wantRaw)
	}

	// Byte 0xB7 = 183 battery temperature, computed independently.
	volts := 183 * 0.01289
	ratio := volts / (3.3 - volts)
	wantBatT := 1185000/(math.Log(ratio)*298+3976) - 273
	if math.Abs(rec.BatteryTemp-wantBatT) > 1e-9 {
		t.Errorf("BatteryTemp = %v, want %v", rec.BatteryTemp, wantBatT)
	}

	// Byte 0x68 = 104 board temperature.
	disc := 36.44506 - 104*0.06875
	wantBoardT := 30 - (math.Sqrt(disc)-5.506)/0.00352
	if math.Abs(rec.BoardTemp-wantBoardT) > 1e-9 {
		t.Errorf("BoardTemp = %v, want %v", rec.BoardTemp, wantBoardT)
	}
}

func TestDecodeTelemetryByteCount(t *testing.T) {
	for _, n := range []int{0, 1, 7, 9, 16} {
		if _, err := DecodeTelemetry(make([]byte, n)); !errors.Is(err, ErrInvalidByteCount) {
			t.Errorf("DecodeTelemetry with %d bytes: error = %v, want ErrInvalidByteCount", n, err)
		}
	}
}

func TestDecodeTelemetryDeterministic(t *testing.T) {
	payload := []byte{0x50, 0x50, 0x50, 0x50, 0x50, 0xAA, 0x55, 0xC7}

	first, err := DecodeTelemetry(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := DecodeTelemetry(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *first != *second {
		t.Errorf("identical payloads decoded differently:\n%+v\n%+v", first, second)
	}
}

func TestBatteryTempDomain(t *testing.T) {
	// The ratio is zero (log undefined) only at zero counts: every byte
	// 1-255 keeps the divider voltage strictly between 0 and 3.3 V.
	payload := []byte{0x50, 0x50, 0x00, 0x68, 0x23, 0x21, 0x0E, 0x08}
	if _, err := DecodeTelemetry(payload); !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("byte2=0x00: error = %v, want ErrOutOfDomain", err)
	}

	for b := 1; b <= 255; b++ {
		payload[2] = byte(b)
		if _, err := DecodeTelemetry(payload); err != nil {
			t.Fatalf("byte2=0x%02X: unexpected error: %v", b, err)
		}
	}
}

func TestBoardTempDomain(t *testing.T) {
	// The discriminant 36.44506 - byte*0.06875 stays positive for every
	// byte value: the failure branch is unreachable with real payloads.
	payload := []byte{0x50, 0x50, 0x50, 0x00, 0x23, 0x21, 0x0E, 0x08}
	for b := 0; b <= 255; b++ {
		payload[3] = byte(b)
		if _, err := DecodeTelemetry(payload); err != nil {
			t.Fatalf("byte3=0x%02X: unexpected error: %v", b, err)
		}
	}
}

func TestDomainFailureIsFailFast(t *testing.T) {
	// Byte 2 is checked before byte 3, so a frame that is invalid in both
	// reports only the battery-temperature failure.
	payload := []byte{0x50, 0x50, 0x00, 0xFF, 0x23, 0x21, 0x0E, 0x08}
	_, err := DecodeTelemetry(payload)
	if !errors.Is(err, ErrOutOfDomain) {
		t.Fatalf("error = %v, want ErrOutOfDomain", err)
	}
	if got := err.Error(); !strings.Contains(got, "battery temperature") {
		t.Errorf("error %q should identify the battery temperature channel", got)
	}
}

func TestPowerStatusRoundTrip(t *testing.T) {
	for b := 0; b <= 255; b++ {
		status := decodePowerStatus(byte(b))
		if got := status.Byte(); got != byte(b) {
			t.Errorf("round trip 0x%02X -> %+v -> 0x%02X", b, status, got)
		}
	}
}

func TestPowerStatusSingleBits(t *testing.T) {
	// Each single-bit byte sets exactly one flag.
	flags := func(p PowerStatus) []bool {
		return []bool{p.Power5V0, p.PowerDepAnt, p.PowerCom, p.SapXPos,
			p.SapYPos, p.SapYNeg, p.SapZPos, p.SapZNeg}
	}
	for bit := 0; bit < 8; bit++ {
		status := decodePowerStatus(1 << bit)
		set := 0
		for i, f := range flags(status) {
			if f {
				set++
				// Flags are listed MSB first.
				if i != 7-bit {
					t.Errorf("bit %d set flag index %d, want %d", bit, i, 7-bit)
				}
			}
		}
		if set != 1 {
			t.Errorf("bit %d set %d flags, want 1", bit, set)
		}
	}
}

func TestCommandStatus(t *testing.T) {
	tests := []struct {
		b           byte
		wantReserve uint8
		wantUplink  uint8
		wantKill    bool
	}{
		{0x00, 0, 0, false},
		{0xFF, 7, 7, true}, // bits 7-4 masked to 3 bits
		{0x71, 7, 0, true},
		{0x0E, 0, 7, false},
		{0x21, 2, 0, true},
		{0x0C, 0, 6, false},
	}

	for _, tt := range tests {
		got := decodeCommandStatus(tt.b)
		if got.ReserveCmdCounter != tt.wantReserve {
			t.Errorf("0x%02X ReserveCmdCounter = %d, want %d", tt.b, got.ReserveCmdCounter, tt.wantReserve)
		}
		if got.CmdUplinkCounter != tt.wantUplink {
			t.Errorf("0x%02X CmdUplinkCounter = %d, want %d", tt.b, got.CmdUplinkCounter, tt.wantUplink)
		}
		if got.KillSw != tt.wantKill {
			t.Errorf("0x%02X KillSw = %v, want %v", tt.b, got.KillSw, tt.wantKill)
		}
	}
}

func TestMissionStatus(t *testing.T) {
	tests := []struct {
		b    byte
		want MissionStatus
	}{
		{0x00, MissionStatus{KillCounter: 0, CurrentMis: MissionNone}},
		{0x08, MissionStatus{MisEndFlag: true, CurrentMis: MissionNone}},
		{0xE5, MissionStatus{KillCounter: 3, MissionPicOn: true, AprsFlag: true, CurrentMis: MissionEarth}},
		{0x52, MissionStatus{KillCounter: 1, MissionPicOn: false, MisErrorFlag: true, CurrentMis: MissionSun}},
		{0x03, MissionStatus{CurrentMis: MissionUnknown}},
	}

	for _, tt := range tests {
		if got := decodeMissionStatus(tt.b); got != tt.want {
			t.Errorf("decodeMissionStatus(0x%02X) = %+v, want %+v", tt.b, got, tt.want)
		}
	}
}

func TestMissionString(t *testing.T) {
	tests := []struct {
		m    Mission
		want string
	}{
		{MissionNone, "None"},
		{MissionEarth, "Earth"},
		{MissionSun, "Sun"},
		{MissionUnknown, "Unknown"},
		{Mission(7), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Mission(%d).String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}

package report

import (
	"fmt"
	"strings"

	"github.com/Ives-Natsume/botan-cw-decoder/internal/beacon"
)

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

// Render formats a validated frame and its decoded telemetry as the standard
// multi-section beacon report.
func Render(frame *beacon.BeaconFrame, rec *beacon.TelemetryRecord) string {
	var b strings.Builder

	b.WriteString("BOTAN Satellite Beacon Data\n")
	b.WriteString("==========================\n")
	fmt.Fprintf(&b, "Satellite: %s\n", frame.SatelliteName)
	fmt.Fprintf(&b, "Call Sign: %s\n", frame.CallSign)
	b.WriteString("\n")

	// The SI field carries two magnitudes with no documented unit, so the
	// report deliberately avoids labelling them dBm/dB.
	b.WriteString("Signal Information (lack definition):\n")
	b.WriteString("--------------\n")
	if frame.Signal != nil {
		fmt.Fprintf(&b, "Unknown argument 1: %.1f\n", frame.Signal.RSSI)
		fmt.Fprintf(&b, "Unknown argument 2: %.1f\n", frame.Signal.SNR)
	} else {
		b.WriteString("Unknown argument 1: N/A\n")
		b.WriteString("Unknown argument 2: N/A\n")
	}
	b.WriteString("\n")

	b.WriteString("Telemetry Data:\n")
	b.WriteString("--------------\n")
	fmt.Fprintf(&b, "Battery Voltage:      %.3f V\n", rec.BatteryVoltage)
	fmt.Fprintf(&b, "Battery Current:      %.1f mA\n", rec.BatteryCurrent)
	fmt.Fprintf(&b, "Battery Temperature:  %.1f °C\n", rec.BatteryTemp)
	fmt.Fprintf(&b, "Board Temperature:    %.1f °C\n", rec.BoardTemp)
	fmt.Fprintf(&b, "Current Consumption:  %.1f mA\n", rec.CurrentConsumption)
	b.WriteString("\n")

	b.WriteString("Power System Status:\n")
	fmt.Fprintf(&b, "  5V Power Line:      %s\n", onOff(rec.Power.Power5V0))
	fmt.Fprintf(&b, "  Antenna Deployment: %s\n", onOff(rec.Power.PowerDepAnt))
	fmt.Fprintf(&b, "  Transponder:        %s\n", onOff(rec.Power.PowerCom))
	b.WriteString("  Solar Panels:\n")
	fmt.Fprintf(&b, "    +X: %s | +Y: %s | -Y: %s | +Z: %s | -Z: %s\n",
		onOff(rec.Power.SapXPos), onOff(rec.Power.SapYPos), onOff(rec.Power.SapYNeg),
		onOff(rec.Power.SapZPos), onOff(rec.Power.SapZNeg))
	b.WriteString("\n")

	b.WriteString("Command Status:\n")
	fmt.Fprintf(&b, "  Reserved Commands:  %d\n", rec.Command.ReserveCmdCounter)
	fmt.Fprintf(&b, "  Uplink Commands:    %d\n", rec.Command.CmdUplinkCounter)
	fmt.Fprintf(&b, "  KILL Switch:        %s\n", onOff(rec.Command.KillSw))
	b.WriteString("\n")

	b.WriteString("Mission Status:\n")
	fmt.Fprintf(&b, "  KILL Counter:       %d\n", rec.Mission.KillCounter)
	fmt.Fprintf(&b, "  Mission PIC:        %s\n", onOff(rec.Mission.MissionPicOn))
	fmt.Fprintf(&b, "  Mission Error:      %s\n", yesNo(rec.Mission.MisErrorFlag))
	fmt.Fprintf(&b, "  Mission End:        %s\n", yesNo(rec.Mission.MisEndFlag))
	fmt.Fprintf(&b, "  APRS Mission:       %s\n", activeInactive(rec.Mission.AprsFlag))
	fmt.Fprintf(&b, "  Current Mission:    %s\n", rec.Mission.CurrentMis)

	return b.String()
}

func activeInactive(b bool) string {
	if b {
		return "ACTIVE"
	}
	return "INACTIVE"
}

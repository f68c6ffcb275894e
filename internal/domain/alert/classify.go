package alert

import (
	"fmt"

	"github.com/omnihealth/guardian/internal/domain/telemetry"
)

// Classification thresholds.
const (
	GlucoseLow  = 70.0
	GlucoseHigh = 250.0
	HeartLow    = 50
	HeartHigh   = 120
	BatteryLow  = 15
)

// Classify maps a reading to an alert type, severity, and message. Checks
// run in order and later matches override earlier ones, so a low battery
// wins over an out-of-range vital.
func Classify(r *telemetry.Reading) (alertType, severity, message string) {
	alertType = TypeUnknown
	severity = SeverityWarning

	if r.GlucoseLevel != nil {
		glucose := *r.GlucoseLevel
		if glucose < GlucoseLow {
			alertType = TypeLowGlucose
			severity = SeverityCritical
			message = fmt.Sprintf("Dangerously low glucose: %v mg/dL", glucose)
		} else if glucose > GlucoseHigh {
			alertType = TypeHighGlucose
			severity = SeverityEmergency
			message = fmt.Sprintf("Dangerously high glucose: %v mg/dL", glucose)
		}
	}
	if r.HeartRate != nil {
		hr := *r.HeartRate
		if hr < HeartLow || hr > HeartHigh {
			alertType = TypeIrregularHeartbeat
			severity = SeverityEmergency
			message = fmt.Sprintf("Irregular heart rate detected: %d bpm", hr)
		}
	}
	if r.BatteryLevel < BatteryLow {
		alertType = TypeLowBattery
		severity = SeverityWarning
		message = fmt.Sprintf("Device battery critically low: %d%%", r.BatteryLevel)
	}
	return alertType, severity, message
}

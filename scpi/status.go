package scpi

// esrConditions names the eight event status register conditions defined by
// IEEE 488.2, ordered from bit 0 (lowest) to bit 7.
var esrConditions = [8]string{
	"Operation Complete",     // bit 0 (1)
	"Request Control",        // bit 1 (2)
	"Query Error",            // bit 2 (4)
	"Device Dependent Error", // bit 3 (8)
	"Execution Error",        // bit 4 (16)
	"Command Error",          // bit 5 (32)
	"User Request",           // bit 6 (64)
	"Power On",               // bit 7 (128)
}

// DecodeESR returns the names of all event status register conditions set in
// value, ordered from the lowest bit to the highest. A zero value yields an
// empty slice.
func DecodeESR(value byte) []string {
	flags := make([]string, 0, 8)
	for i, name := range esrConditions {
		if (value>>i)&1 == 1 {
			flags = append(flags, name)
		}
	}

	return flags
}

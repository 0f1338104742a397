// file: internals/helpers/parse.go
package helper

import (
	"fmt"
	"strings"
)

// ParseBoolLoose menormalkan input boolean dari klien lama yang kadang
// mengirim string ("true"/"1"/"ya") alih-alih boolean JSON. Service layer
// hanya pernah menerima bool murni; normalisasi terjadi di boundary ini.
func ParseBoolLoose(v any) (bool, error) {
	switch t := v.(type) {
	case nil:
		return false, fmt.Errorf("nilai boolean kosong")
	case bool:
		return t, nil
	case float64:
		// JSON number
		return t != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "ya", "y", "on":
			return true, nil
		case "false", "0", "no", "tidak", "n", "off":
			return false, nil
		}
		return false, fmt.Errorf("nilai boolean tidak dikenal: %q", t)
	default:
		return false, fmt.Errorf("tipe boolean tidak didukung: %T", v)
	}
}

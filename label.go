package nbhtml

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Label is the default [LabelFunc]. It renders "name [unit]", or just the
// name when the variable has no unit.
func Label(v *Variable, name string) string {
	unit := ""
	if v != nil {
		unit = strings.TrimSpace(v.Unit)
	}
	if unit == "" || unit == "dimensionless" {
		return norm.NFC.String(name)
	}
	if name == "" {
		return norm.NFC.String("[" + unit + "]")
	}
	return norm.NFC.String(name + " [" + unit + "]")
}

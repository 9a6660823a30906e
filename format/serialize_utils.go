// Package format contains text formatting helpers for layer tables.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatToFixedWidthString formats n right aligned in w characters with
// trailing zeros removed.
func FloatToFixedWidthString(n float64, w int) string {
	wStr := strconv.Itoa(w)
	s := fmt.Sprintf("%"+wStr+"."+wStr+"f", n)
	if len(s) > w {
		s = s[:w]
	}
	trimed := s
	if strings.Contains(trimed, ".") {
		trimed = strings.TrimRight(trimed, "0")
		trimed = strings.TrimRight(trimed, ".")
	}
	if trimed == "" || trimed == "-" {
		trimed = "0"
	}
	return strings.Repeat(" ", w-len(trimed)) + trimed
}

// PadRight pads s with spaces to w characters.
func PadRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

package templates

import (
	"strconv"
	"strings"
)

func prefixedStrings(prefix string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(prefix)
		sb.WriteString(strconv.Itoa(i))
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// typeParams renders "T0, T1, O any", or "O any" without inputs.
func typeParams(count int) string {
	if count == 0 {
		return "O any"
	}
	return prefixedStrings("T", count) + ", O any"
}

// nameParams renders "name0, name1 string, ", or nothing without inputs.
func nameParams(count int) string {
	if count == 0 {
		return ""
	}
	return prefixedStrings("name", count) + " string, "
}

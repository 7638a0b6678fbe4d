package infrastructure

import (
	"fmt"
	"strconv"
	"strings"
)

// paper sizes in inches
var pageSizes = map[string][2]float64{
	"letter": {8.5, 11},
	"legal":  {8.5, 14},
	"a4":     {8.27, 11.69},
	"a5":     {5.83, 8.27},
}

// ParsePageSize returns the width and height in inches of a named paper size.
func ParsePageSize(name string) (float64, float64, error) {
	if strings.TrimSpace(name) == "" {
		name = "letter"
	}
	s, ok := pageSizes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, 0, fmt.Errorf("unknown page size %q", name)
	}
	return s[0], s[1], nil
}

// ParseLength converts "0.75in", "20mm", "2cm" or a bare number (inches)
// into inches.
func ParseLength(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0.75, nil
	}
	factor := 1.0
	switch {
	case strings.HasSuffix(s, "in"):
		s = strings.TrimSuffix(s, "in")
	case strings.HasSuffix(s, "mm"):
		s, factor = strings.TrimSuffix(s, "mm"), 1/25.4
	case strings.HasSuffix(s, "cm"):
		s, factor = strings.TrimSuffix(s, "cm"), 1/2.54
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	return v * factor, nil
}

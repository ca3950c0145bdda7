package units

import (
	"fmt"
	"math"
	"strconv"
)

// M3PerBarrel converts US oil barrels to cubic meters.
const M3PerBarrel = 0.159

// Barrels is a float64 wrapper representing an oil volume in barrels.
type Barrels float64

// M3 returns the volume in cubic meters.
func (b Barrels) M3() CubicMeters { return CubicMeters(float64(b) * M3PerBarrel) }

// String returns a human-readable volume with thousands grouping, e.g. "1,000 bbl".
// The value is rounded to the nearest whole barrel.
func (b Barrels) String() string {
	return groupThousands(int64(math.Round(float64(b)))) + " bbl"
}

// CubicMeters is a float64 wrapper representing a volume in cubic meters.
type CubicMeters float64

// Barrels returns the volume in US oil barrels.
func (m CubicMeters) Barrels() Barrels { return Barrels(float64(m) / M3PerBarrel) }

// String returns a human-readable volume with thousands grouping and one
// decimal, e.g. "1,590.0 m³".
func (m CubicMeters) String() string {
	r := math.Round(float64(m)*10) / 10
	whole := math.Trunc(r)
	digit := int(math.Round(math.Abs(r-whole) * 10))
	if digit == 10 {
		// rounding artifact when r sits on a whole number
		digit = 0
		whole = math.Round(r)
	}
	return fmt.Sprintf("%s.%d m³", groupThousands(int64(whole)), digit)
}

// SquareKm is a float64 wrapper representing an area in square kilometers.
type SquareKm float64

// String returns a human-readable area with thousands grouping and two
// decimals, e.g. "1,234.56 km²".
func (a SquareKm) String() string {
	r := math.Round(float64(a)*100) / 100
	whole := math.Trunc(r)
	cents := int(math.Round(math.Abs(r-whole) * 100))
	if cents == 100 {
		cents = 0
		whole = math.Round(r)
	}
	return fmt.Sprintf("%s.%02d km²", groupThousands(int64(whole)), cents)
}

// groupThousands renders n with "," separators every three digits.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

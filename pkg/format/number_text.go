package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const radixDigits = "0123456789abcdefghijklmnopqrstuvwxyz"

// numberText renders f with the shortest round-trip digits, switching to
// exponent notation below 1e-6 and from 1e21 upwards.
func numberText(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	sign := ""
	if f < 0 {
		sign, f = "-", -f
	}

	digits, exp := shortestDigits(f)
	k, n := len(digits), exp+1

	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}
	return sign + exponentText(digits, exp)
}

// shortestDigits returns the significant digits of f (positive, finite) and
// the decimal exponent of the first one.
func shortestDigits(f float64) (string, int) {
	raw := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, expPart, _ := strings.Cut(raw, "e")
	exp, _ := strconv.Atoi(expPart)
	return strings.Replace(mantissa, ".", "", 1), exp
}

func exponentText(digits string, exp int) string {
	var sb strings.Builder
	sb.WriteByte(digits[0])
	if len(digits) > 1 {
		sb.WriteByte('.')
		sb.WriteString(digits[1:])
	}
	sb.WriteByte('e')
	if exp < 0 {
		sb.WriteByte('-')
		exp = -exp
	} else {
		sb.WriteByte('+')
	}
	sb.WriteString(strconv.Itoa(exp))
	return sb.String()
}

// toExponential renders f with as many digits as needed to identify it.
func toExponential(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return numberText(f)
	}
	if f == 0 {
		return "0e+0"
	}
	sign := ""
	if f < 0 {
		sign, f = "-", -f
	}
	digits, exp := shortestDigits(f)
	return sign + exponentText(digits, exp)
}

// toFixed rounds f to p digits after the decimal point. Ties round away from
// zero on the exact binary value.
func toFixed(f float64, p int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= 1e21 {
		return numberText(f)
	}
	p = clamp(p, 0, 100)

	sign := ""
	if f < 0 {
		sign, f = "-", -f
	}

	exact := exactDecimal(f)
	intPart, frac, _ := strings.Cut(exact, ".")
	if len(frac) < p+1 {
		frac += strings.Repeat("0", p+1-len(frac))
	}

	kept := intPart + frac[:p]
	if frac[p] >= '5' {
		kept = incrementDigits(kept)
	}

	split := len(kept) - p
	if p == 0 {
		return sign + kept
	}
	return sign + kept[:split] + "." + kept[split:]
}

// toPrecision rounds f to p significant digits, using exponent notation when
// the exponent is below -6 or not smaller than p.
func toPrecision(f float64, p int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return numberText(f)
	}
	p = clamp(p, 1, 100)

	sign := ""
	if f < 0 {
		sign, f = "-", -f
	}
	if f == 0 {
		if p == 1 {
			return "0"
		}
		return "0." + strings.Repeat("0", p-1)
	}

	raw := new(big.Float).SetFloat64(f).Text('e', 1100)
	mantissa, expPart, _ := strings.Cut(raw, "e")
	exp, _ := strconv.Atoi(expPart)
	digits := strings.Replace(mantissa, ".", "", 1)

	kept := digits[:p]
	if digits[p] >= '5' {
		kept = incrementDigits(kept)
		if len(kept) > p {
			kept = kept[:p]
			exp++
		}
	}

	switch {
	case exp < -6 || exp >= p:
		return sign + exponentText(kept, exp)
	case exp >= 0:
		if p == exp+1 {
			return sign + kept
		}
		return sign + kept[:exp+1] + "." + kept[exp+1:]
	default:
		return sign + "0." + strings.Repeat("0", -(exp+1)) + kept
	}
}

// radixText renders a non-negative finite f in the given base, including the
// fraction digits needed to tell f apart from its neighbours.
func radixText(f float64, radix int) string {
	base := float64(radix)
	integer := math.Floor(f)
	fraction := f - integer

	delta := 0.5 * (math.Nextafter(f, math.Inf(1)) - f)
	delta = math.Max(math.Nextafter(0, 1), delta)

	var fracDigits []byte
	if fraction >= delta {
		for {
			fraction *= base
			delta *= base
			digit := int(fraction)
			fracDigits = append(fracDigits, radixDigits[digit])
			fraction -= float64(digit)
			if fraction > 0.5 || (fraction == 0.5 && digit&1 == 1) {
				if fraction+delta > 1 {
					for {
						last := len(fracDigits) - 1
						if last < 0 {
							integer++
							break
						}
						d := strings.IndexByte(radixDigits, fracDigits[last])
						fracDigits = fracDigits[:last]
						if d+1 < radix {
							fracDigits = append(fracDigits, radixDigits[d+1])
							break
						}
					}
					break
				}
			}
			if fraction < delta {
				break
			}
		}
	}

	var intText string
	if integer < math.MaxInt64 {
		intText = strconv.FormatInt(int64(integer), radix)
	} else {
		whole, _ := new(big.Float).SetFloat64(integer).Int(nil)
		intText = whole.Text(radix)
	}

	if len(fracDigits) == 0 {
		return intText
	}
	return intText + "." + string(fracDigits)
}

func exactDecimal(f float64) string {
	return new(big.Float).SetFloat64(f).Text('f', 1074)
}

// incrementDigits adds one to a string of decimal digits.
func incrementDigits(digits string) string {
	buf := []byte(digits)
	for i := len(buf) - 1; i >= 0; i-- {
		if buf[i] < '9' {
			buf[i]++
			return string(buf)
		}
		buf[i] = '0'
	}
	return "1" + string(buf)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package checksum implements the check-digit arithmetic behind card numbers
// and bank routing numbers. Inputs are digit strings; anything else fails.
package checksum

import "github.com/lithictech/go-formsubmit/stringutil"

// Luhn reports whether digits passes the Luhn (mod 10) check.
// Starting from the rightmost digit, every second digit is doubled,
// doubled values over 9 have 9 subtracted, and the total must be a multiple of 10.
func Luhn(digits string) bool {
	if digits == "" {
		return false
	}
	return luhnSum(digits, false)%10 == 0
}

// LuhnCheckDigit returns the digit that, appended to payload, makes it pass Luhn.
func LuhnCheckDigit(payload string) byte {
	sum := luhnSum(payload, true)
	return byte('0' + (10-sum%10)%10)
}

func luhnSum(digits string, doubleFirst bool) int {
	sum := 0
	double := doubleFirst
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if !stringutil.IsDigit(c) {
			return -1
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum
}

var abaWeights = [9]int{3, 7, 1, 3, 7, 1, 3, 7, 1}

// ABARouting reports whether s is a nine-digit ABA routing transit number:
// 3(d1+d4+d7) + 7(d2+d5+d8) + (d3+d6+d9) must be divisible by 10.
func ABARouting(s string) bool {
	if len(s) != 9 {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		if !stringutil.IsDigit(s[i]) {
			return false
		}
		sum += abaWeights[i] * int(s[i]-'0')
	}
	return sum%10 == 0
}

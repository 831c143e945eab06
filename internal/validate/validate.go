// Package validate implements the field rules enforced by the dashboard
// forms: email and phone formats, South African ID numbers, postal codes and
// the province list.
package validate

import "regexp"

var (
	emailRe      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRe      = regexp.MustCompile(`^(\+27|0)[1-9][0-9]{8}$`)
	postalCodeRe = regexp.MustCompile(`^[0-9]{4}$`)
	idNumberRe   = regexp.MustCompile(`^[0-9]{13}$`)
	branchCodeRe = regexp.MustCompile(`^[0-9]{6}$`)
)

// ProvinceCodes maps the nine provinces to their short codes, used for
// generated unit references.
var ProvinceCodes = map[string]string{
	"Eastern Cape":  "EC",
	"Free State":    "FS",
	"Gauteng":       "GP",
	"KwaZulu-Natal": "KZN",
	"Limpopo":       "LP",
	"Mpumalanga":    "MP",
	"Northern Cape": "NC",
	"North West":    "NW",
	"Western Cape":  "WC",
}

// Email reports whether s is a well-formed email address.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Phone reports whether s is a valid SA phone number (0... or +27...).
func Phone(s string) bool {
	return phoneRe.MatchString(s)
}

// PostalCode reports whether s is a 4-digit postal code.
func PostalCode(s string) bool {
	return postalCodeRe.MatchString(s)
}

// BranchCode reports whether s is a 6-digit bank branch code.
func BranchCode(s string) bool {
	return branchCodeRe.MatchString(s)
}

// Province reports whether s names one of the nine provinces.
func Province(s string) bool {
	_, ok := ProvinceCodes[s]
	return ok
}

// IDNumber reports whether s is a 13-digit SA ID number with a valid Luhn
// check digit.
func IDNumber(s string) bool {
	if !idNumberRe.MatchString(s) {
		return false
	}
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		d := int(s[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// Errors accumulates field violations for a single record.
type Errors map[string]string

// Require adds an error when value is empty.
func (e Errors) Require(field, value string) {
	if value == "" {
		e[field] = "is required"
	}
}

// Check adds msg when ok is false and the field has no earlier error.
func (e Errors) Check(field string, ok bool, msg string) {
	if _, taken := e[field]; taken {
		return
	}
	if !ok {
		e[field] = msg
	}
}

// OK reports whether no violations were recorded.
func (e Errors) OK() bool {
	return len(e) == 0
}

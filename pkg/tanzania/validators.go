// Package tanzania holds Tanzania-specific identifier validation and
// normalization helpers used across customer and loan flows.
package tanzania

import (
	"regexp"
	"strings"
)

var (
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\+255[67]\d{8}$`),
		regexp.MustCompile(`^255[67]\d{8}$`),
		regexp.MustCompile(`^0[67]\d{8}$`),
	}
	digitsOnly = regexp.MustCompile(`^\d+$`)
)

// Regions lists the official Tanzania mainland and Zanzibar regions.
var Regions = []string{
	"Arusha", "Dar es Salaam", "Dodoma", "Geita", "Iringa", "Kagera",
	"Katavi", "Kigoma", "Kilimanjaro", "Lindi", "Manyara", "Mara",
	"Mbeya", "Morogoro", "Mtwara", "Mwanza", "Njombe", "Pemba North",
	"Pemba South", "Pwani", "Rukwa", "Ruvuma", "Shinyanga", "Simiyu",
	"Singida", "Songwe", "Tabora", "Tanga", "Unguja North", "Unguja South",
}

// ValidPhoneNumber reports whether the number is a Tanzania mobile number
// in +255, 255 or 0 prefixed form.
func ValidPhoneNumber(phone string) bool {
	if phone == "" {
		return false
	}
	for _, p := range phonePatterns {
		if p.MatchString(phone) {
			return true
		}
	}
	return false
}

// NormalizePhoneNumber converts a valid Tanzania number to +255 form.
// Unrecognized input is returned unchanged.
func NormalizePhoneNumber(phone string) string {
	phone = strings.NewReplacer(" ", "", "-", "").Replace(phone)
	switch {
	case strings.HasPrefix(phone, "+255"):
		return phone
	case strings.HasPrefix(phone, "255"):
		return "+" + phone
	case strings.HasPrefix(phone, "0"):
		return "+255" + phone[1:]
	}
	return phone
}

// ValidNIDANumber reports whether the value is a well-formed NIDA number
// (exactly 20 digits). Spaces and dashes are tolerated.
func ValidNIDANumber(nida string) bool {
	clean := strings.NewReplacer(" ", "", "-", "").Replace(nida)
	return len(clean) == 20 && digitsOnly.MatchString(clean)
}

// NormalizeNIDANumber strips separators from a NIDA number.
func NormalizeNIDANumber(nida string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(nida)
}

// ValidTINNumber reports whether the value is a well-formed TRA TIN
// (exactly 9 digits).
func ValidTINNumber(tin string) bool {
	clean := strings.NewReplacer(" ", "", "-", "").Replace(tin)
	return len(clean) == 9 && digitsOnly.MatchString(clean)
}

// ValidRegion reports whether region is an official Tanzania region.
func ValidRegion(region string) bool {
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}

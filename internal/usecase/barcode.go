package usecase

import "strings"

// ValidBarcode reports whether a barcode looks like a real EAN-8, UPC-A,
// EAN-13 or GTIN-14 code. Checksums are verified for the three common
// lengths; 14-digit codes are accepted without one.
func ValidBarcode(barcode string) bool {
	digits := stripNonDigits(barcode)

	switch len(digits) {
	case 8:
		return validEAN8Checksum(digits)
	case 12:
		return validUPCChecksum(digits)
	case 13:
		return validEAN13Checksum(digits)
	case 14:
		return true
	default:
		return false
	}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validEAN13Checksum(ean string) bool {
	sum := 0
	for i := 0; i < 12; i++ {
		digit := int(ean[i] - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}
	check := (10 - sum%10) % 10
	return check == int(ean[12]-'0')
}

func validUPCChecksum(upc string) bool {
	sum := 0
	for i := 0; i < 11; i++ {
		digit := int(upc[i] - '0')
		if i%2 == 0 {
			sum += digit * 3
		} else {
			sum += digit
		}
	}
	check := (10 - sum%10) % 10
	return check == int(upc[11]-'0')
}

func validEAN8Checksum(ean string) bool {
	sum := 0
	for i := 0; i < 7; i++ {
		digit := int(ean[i] - '0')
		if i%2 == 0 {
			sum += digit * 3
		} else {
			sum += digit
		}
	}
	check := (10 - sum%10) % 10
	return check == int(ean[7]-'0')
}

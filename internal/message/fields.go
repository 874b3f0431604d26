package message

import (
	"encoding/base64"
	"errors"
	"strconv"
)

// Wire-format field widths, in base64 characters.
const (
	accountKeyLen = 116
	signatureLen  = 88
)

// checkAccountKey validates a public-key field: well-formed base64 of exactly
// accountKeyLen characters. noun names the field in the error message.
func checkAccountKey(value, noun string) *Error {
	if _, err := base64.StdEncoding.DecodeString(value); err != nil {
		return invalidField("%s (%s) is not base64", noun, value)
	}
	if len(value) != accountKeyLen {
		return invalidField("%s (%s) is an invalid key", noun, value)
	}
	return nil
}

// parseFloat parses a decimal floating-point field. A literal beyond the
// float64 range parses as ±Inf instead of failing; the range checks belong to
// the caller. Only a malformed literal reports !ok.
func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// formatFloat renders a float in plain decimal notation, shortest form that
// round-trips. The wire format never uses exponent notation.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

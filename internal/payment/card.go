package payment

import (
	"strconv"
	"strings"
	"time"
)

// ValidationError is a malformed-input failure whose message is safe to
// show to the payer unchanged.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// CardDetails are the raw card fields submitted with a credit_card payment.
type CardDetails struct {
	Number string `json:"cardNumber"`
	Expiry string `json:"cardExpiry"`
	CVV    string `json:"cardCvv"`
}

// ValidateCard checks the number format, CVV and expiry of a card. The Luhn
// checksum is deliberately not part of this check; see LuhnValid.
func ValidateCard(details CardDetails, now time.Time) error {
	card := strings.ReplaceAll(details.Number, " ", "")
	expiry := strings.TrimSpace(details.Expiry)
	cvv := strings.TrimSpace(details.CVV)

	if card == "" {
		return invalid("Card number is required.")
	}
	if expiry == "" {
		return invalid("Expiration date is required.")
	}
	if cvv == "" {
		return invalid("CVV is required.")
	}
	if !isDigits(card) || len(card) < 12 || len(card) > 19 {
		return invalid("Invalid card number. Must be 12-19 digits.")
	}
	if !isDigits(cvv) || len(cvv) < 3 || len(cvv) > 4 {
		return invalid("Invalid CVV. Must be 3-4 digits.")
	}
	if !strings.Contains(expiry, "/") {
		return invalid("Invalid expiry date format. Use MM/YY.")
	}

	parts := strings.SplitN(expiry, "/", 2)
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return invalid("Invalid expiry date format.")
	}
	yearPart := strings.TrimSpace(parts[1])
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return invalid("Invalid expiry date format.")
	}
	if len(yearPart) == 2 {
		year += 2000
	}

	if month < 1 || month > 12 {
		return invalid("Invalid month in expiry date.")
	}
	if year < now.Year() || (year == now.Year() && time.Month(month) < now.Month()) {
		return invalid("Card has expired.")
	}
	return nil
}

// LuhnValid reports whether a card number passes the mod-10 checksum,
// doubling every second digit from the right. A false result alone does not
// reject a payment: synthetic test numbers are allowed through with a
// logged warning.
func LuhnValid(card string) bool {
	if card == "" {
		return false
	}
	checksum := 0
	for i := 0; i < len(card); i++ {
		c := card[len(card)-1-i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if i%2 == 1 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		checksum += digit
	}
	return checksum%10 == 0
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// maskCard keeps the first six and last four digits for log output.
func maskCard(card string) string {
	if len(card) < 10 {
		return "****"
	}
	return card[:6] + "..." + card[len(card)-4:]
}

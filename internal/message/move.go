package message

import (
	"math"
	"strings"
)

// Move is a single transfer instruction: a recipient public key and an amount.
type Move struct {
	From   string
	Amount float64
}

// ParseMove decodes the comma-delimited wire form "<from>,<amount>".
func ParseMove(s string) (Move, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Move{}, structural("Move does not have exactly two parts")
	}

	from := parts[0]
	if err := checkAccountKey(from, "Recipient public key"); err != nil {
		return Move{}, err
	}

	amount, ok := parseFloat(parts[1])
	if !ok {
		return Move{}, invalidField("Amount (%s) is not a number", parts[1])
	}
	if amount <= 0 {
		return Move{}, invalidField("Amount must be positive")
	}
	// Exactly +Inf is rejected; any large finite value passes. An oversized
	// decimal literal saturates to +Inf in parseFloat and lands here.
	if amount == math.Inf(1) {
		return Move{}, invalidField("Amount is too big")
	}

	return Move{From: from, Amount: amount}, nil
}

// String renders the wire form. A positive-infinity amount is substituted with
// the largest finite float64: the wire format has no infinity token, so the
// round trip is lossy at that one point.
func (m Move) String() string {
	amount := m.Amount
	if amount == math.Inf(1) {
		amount = math.MaxFloat64
	}
	return m.From + "," + formatFloat(amount)
}

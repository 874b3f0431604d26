package message

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// NewTransaction is a client-submitted transaction that has not yet been
// assigned a position in the log.
type NewTransaction struct {
	UniqueString string
	Sig          string
	Sender       string
	Moves        []Move
}

// Transaction is a transaction as stored in the log, carrying the serial the
// store assigned at append time. The codec never assigns serials itself.
type Transaction struct {
	Serial       uint64
	UniqueString string
	Sig          string
	Sender       string
	Moves        []Move
}

// parseTransactionBody validates the fields that follow the tag: unique
// string, signature, sender, then each move. Fields are checked left to
// right and the first failure wins.
func parseTransactionBody(parts []string) (uniqueString, sig, sender string, moves []Move, err error) {
	uniqueString = parts[0]
	if _, decErr := base64.StdEncoding.DecodeString(uniqueString); decErr != nil {
		return "", "", "", nil, invalidField("Unique string (%s) is not base64", uniqueString)
	}
	if uniqueString == "" {
		return "", "", "", nil, invalidField("Unique string is too short")
	}

	sig = parts[1]
	if _, decErr := base64.StdEncoding.DecodeString(sig); decErr != nil {
		return "", "", "", nil, invalidField("Signature (%s) is not base64", sig)
	}
	if len(sig) != signatureLen {
		return "", "", "", nil, invalidField("Signature (%s) has an invalid length", sig)
	}

	sender = parts[2]
	if keyErr := checkAccountKey(sender, "Sender public key"); keyErr != nil {
		return "", "", "", nil, keyErr
	}

	for _, raw := range parts[3:] {
		m, moveErr := ParseMove(raw)
		if moveErr != nil {
			return "", "", "", nil, moveErr
		}
		moves = append(moves, m)
	}
	return uniqueString, sig, sender, moves, nil
}

// ParseTransaction decodes the persisted colon-delimited form
// "<serial>:transaction:<unique>:<sig>:<sender>[:<move>...]".
func ParseTransaction(s string) (Transaction, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 5 {
		return Transaction{}, structural("Transaction has less than five parts")
	}

	serial, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return Transaction{}, invalidField("Serial (%s) is not a number", parts[0])
	}
	if parts[1] != TagTransaction {
		return Transaction{}, unrecognized("Second part is not %q", TagTransaction)
	}

	uniqueString, sig, sender, moves, bodyErr := parseTransactionBody(parts[2:])
	if bodyErr != nil {
		return Transaction{}, bodyErr
	}
	return Transaction{
		Serial:       serial,
		UniqueString: uniqueString,
		Sig:          sig,
		Sender:       sender,
		Moves:        moves,
	}, nil
}

// ParseNewTransaction decodes the not-yet-persisted form, which is the
// persisted form without the leading serial.
func ParseNewTransaction(s string) (NewTransaction, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 4 {
		return NewTransaction{}, structural("Transaction has less than four parts")
	}
	if parts[0] != TagTransaction {
		return NewTransaction{}, unrecognized("First part is not %q", TagTransaction)
	}

	uniqueString, sig, sender, moves, err := parseTransactionBody(parts[1:])
	if err != nil {
		return NewTransaction{}, err
	}
	return NewTransaction{
		UniqueString: uniqueString,
		Sig:          sig,
		Sender:       sender,
		Moves:        moves,
	}, nil
}

// render joins the persisted fields with sep. Block encoding reuses it with
// ";" so that an embedded transaction survives the block's colon split.
func (t Transaction) render(sep string) string {
	parts := make([]string, 0, 5+len(t.Moves))
	parts = append(parts, strconv.FormatUint(t.Serial, 10), TagTransaction, t.UniqueString, t.Sig, t.Sender)
	for _, m := range t.Moves {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, sep)
}

// String renders the persisted colon-delimited wire form, no trailing
// delimiter.
func (t Transaction) String() string { return t.render(":") }

// String renders the not-yet-persisted wire form.
func (t NewTransaction) String() string {
	parts := make([]string, 0, 4+len(t.Moves))
	parts = append(parts, TagTransaction, t.UniqueString, t.Sig, t.Sender)
	for _, m := range t.Moves {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, ":")
}

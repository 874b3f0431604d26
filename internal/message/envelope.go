// Package message implements the colon-delimited wire codec for the relay's
// records: moves, transactions, blocks, and the tagged envelopes around them.
// Every function here is pure; all decoding returns either a fully valid
// record or the first validation failure in field order.
package message

import (
	"fmt"
	"strings"
)

// Type tags carried positionally inside the wire encoding.
const (
	TagTransaction = "transaction"
	TagBlock       = "block"
)

// Message is a persisted log entry: either a Block or a Transaction. The
// union is closed; Block and Transaction are its only members.
type Message interface {
	fmt.Stringer
	message()
}

func (Block) message()       {}
func (Transaction) message() {}

// NewMessage is a client-submitted record: either a NewBlock or a
// NewTransaction.
type NewMessage interface {
	fmt.Stringer
	newMessage()
}

func (NewBlock) newMessage()       {}
func (NewTransaction) newMessage() {}

// ParseMessage decodes a persisted log entry, dispatching on the type tag.
// The tag sits in the second position, after the serial.
func ParseMessage(s string) (Message, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return nil, structural("Message has less than two parts")
	}
	switch parts[1] {
	case TagBlock:
		b, err := ParseBlock(s)
		if err != nil {
			return nil, err
		}
		return b, nil
	case TagTransaction:
		t, err := ParseTransaction(s)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, unrecognized("Message is not a block or a transaction")
	}
}

// ParseNewMessage decodes a client submission. With no serial in front, the
// tag sits in the first position.
func ParseNewMessage(s string) (NewMessage, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return nil, structural("Message has less than two parts")
	}
	switch parts[0] {
	case TagBlock:
		b, err := ParseNewBlock(s)
		if err != nil {
			return nil, err
		}
		return b, nil
	case TagTransaction:
		t, err := ParseNewTransaction(s)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, unrecognized("Message is not a block or a transaction")
	}
}

package message_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/punchamoorthee/chainrelay/internal/message"
)

// Well-formed field values of the exact wire widths. 116 "A"s decode to 87
// zero bytes, 88 "B"s to a 66-byte signature.
var (
	testKey = strings.Repeat("A", 116)
	testSig = strings.Repeat("B", 88)
)

func requireKind(t require.TestingT, err error, kind message.ErrorKind) {
	require.Error(t, err)
	var cerr *message.Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, kind, cerr.Kind)
}

func TestParseMove(t *testing.T) {
	m, err := message.ParseMove(testKey + ",1.5")
	require.NoError(t, err)
	require.Equal(t, testKey, m.From)
	require.Equal(t, 1.5, m.Amount)
}

func TestParseMoveIntegerAmount(t *testing.T) {
	m, err := message.ParseMove(testKey + ",3")
	require.NoError(t, err)
	require.Equal(t, 3.0, m.Amount)
}

func TestParseMovePartCount(t *testing.T) {
	for _, input := range []string{testKey, testKey + ",1,2", ""} {
		_, err := message.ParseMove(input)
		requireKind(t, err, message.KindStructural)
	}
}

func TestParseMoveRecipientNotBase64(t *testing.T) {
	_, err := message.ParseMove("not-base64!!,1")
	requireKind(t, err, message.KindInvalidField)
	require.Contains(t, err.Error(), "Recipient public key")
	require.Contains(t, err.Error(), "not-base64!!")
}

func TestParseMoveRecipientLengthBoundary(t *testing.T) {
	cases := []struct {
		length int
		ok     bool
	}{
		{112, false},
		{115, false},
		{116, true},
		{117, false},
		{120, false},
	}
	for _, c := range cases {
		key := strings.Repeat("A", c.length)
		_, err := message.ParseMove(key + ",1")
		if c.ok {
			require.NoError(t, err, "length %d", c.length)
		} else {
			requireKind(t, err, message.KindInvalidField)
		}
	}
}

func TestParseMoveAmountValidation(t *testing.T) {
	cases := []struct {
		name   string
		amount string
	}{
		{"not a number", "abc"},
		{"empty", ""},
		{"zero", "0"},
		{"negative", "-1"},
		{"infinity literal", "inf"},
		{"oversized literal", "1e999"},
		{"negative overflow", "-1e999"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := message.ParseMove(testKey + "," + c.amount)
			requireKind(t, err, message.KindInvalidField)
		})
	}
}

func TestParseMoveAcceptsHugeFiniteAmount(t *testing.T) {
	// Only the exact infinity sentinel is "too big"; any representable
	// finite value passes.
	m, err := message.ParseMove(testKey + ",1e308")
	require.NoError(t, err)
	require.Equal(t, 1e308, m.Amount)
}

func TestMoveRoundTrip(t *testing.T) {
	orig := message.Move{From: testKey, Amount: 123.456}
	decoded, err := message.ParseMove(orig.String())
	require.NoError(t, err)
	require.Equal(t, orig, decoded)
}

func TestMoveInfinityEncodesAsMaxFinite(t *testing.T) {
	// Encoding has no infinity token, so the round trip is lossy here: +Inf
	// comes back as the largest finite float64.
	encoded := message.Move{From: testKey, Amount: math.Inf(1)}.String()
	decoded, err := message.ParseMove(encoded)
	require.NoError(t, err)
	require.Equal(t, math.MaxFloat64, decoded.Amount)
}

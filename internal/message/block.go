package message

import (
	"strconv"
	"strings"
)

// NewBlock is a block that has not yet been assigned a position in the log.
// The transactions it carries are persisted ones: a block packages entries
// that already have serials.
type NewBlock struct {
	Nonce        float64
	MinerAccount string
	Transactions []Transaction
}

// Block is a block as stored in the log.
type Block struct {
	Serial       uint64
	Nonce        float64
	MinerAccount string
	Transactions []Transaction
}

// parseBlockBody validates nonce and miner account, then decodes each
// embedded transaction after restoring its colon delimiters.
func parseBlockBody(parts []string) (nonce float64, minerAccount string, txs []Transaction, err error) {
	nonce, ok := parseFloat(parts[0])
	if !ok {
		return 0, "", nil, invalidField("Nonce (%s) is not a number", parts[0])
	}

	minerAccount = parts[1]
	if keyErr := checkAccountKey(minerAccount, "Miner account"); keyErr != nil {
		return 0, "", nil, keyErr
	}

	for _, raw := range parts[2:] {
		tx, txErr := ParseTransaction(strings.ReplaceAll(raw, ";", ":"))
		if txErr != nil {
			return 0, "", nil, txErr
		}
		txs = append(txs, tx)
	}
	return nonce, minerAccount, txs, nil
}

// ParseBlock decodes the persisted form
// "<serial>:block:<nonce>:<miner>[:<tx>...]" where each embedded transaction
// is semicolon-delimited internally.
func ParseBlock(s string) (Block, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 4 {
		return Block{}, structural("Block has less than four parts")
	}

	serial, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return Block{}, invalidField("Serial (%s) is not a number", parts[0])
	}
	if parts[1] != TagBlock {
		return Block{}, unrecognized("Second part is not %q", TagBlock)
	}

	nonce, minerAccount, txs, bodyErr := parseBlockBody(parts[2:])
	if bodyErr != nil {
		return Block{}, bodyErr
	}
	return Block{Serial: serial, Nonce: nonce, MinerAccount: minerAccount, Transactions: txs}, nil
}

// ParseNewBlock decodes the not-yet-persisted form, without the leading
// serial.
func ParseNewBlock(s string) (NewBlock, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return NewBlock{}, structural("Block has less than three parts")
	}
	if parts[0] != TagBlock {
		return NewBlock{}, unrecognized("First part is not %q", TagBlock)
	}

	nonce, minerAccount, txs, err := parseBlockBody(parts[1:])
	if err != nil {
		return NewBlock{}, err
	}
	return NewBlock{Nonce: nonce, MinerAccount: minerAccount, Transactions: txs}, nil
}

// String renders the persisted wire form. Each embedded transaction is
// rendered with semicolons so the block's own colon split leaves it whole.
func (b Block) String() string {
	parts := make([]string, 0, 4+len(b.Transactions))
	parts = append(parts, strconv.FormatUint(b.Serial, 10), TagBlock, formatFloat(b.Nonce), b.MinerAccount)
	for _, tx := range b.Transactions {
		parts = append(parts, tx.render(";"))
	}
	return strings.Join(parts, ":")
}

// String renders the not-yet-persisted wire form.
func (b NewBlock) String() string {
	parts := make([]string, 0, 3+len(b.Transactions))
	parts = append(parts, TagBlock, formatFloat(b.Nonce), b.MinerAccount)
	for _, tx := range b.Transactions {
		parts = append(parts, tx.render(";"))
	}
	return strings.Join(parts, ":")
}

package message

// GenesisNonce is the nonce of the bootstrap block.
const GenesisNonce = 1337.0

// genesisMinerAccount is a hardcoded bootstrap value of the right width; it
// is not derived from any key material.
const genesisMinerAccount = "AAAAB3NzaC1yc2EAAAADAQABAAAAQQDbXz4rfbrRrXYQJbwuC" +
	"kIyIsccHRpxhxqxgKeneVF4eUXof6e2nLvdXkGA0Y6uBAQ6N7qKxasVTR/2s1N2OBWF"

// Genesis returns the fixed block that seeds an empty log. It carries no
// transactions and always encodes to the same string.
func Genesis() NewBlock {
	return NewBlock{
		Nonce:        GenesisNonce,
		MinerAccount: genesisMinerAccount,
	}
}

package factory

import (
	"crypto/sha256"
	"encoding/binary"

	solanago "github.com/gagliardetto/solana-go"
)

// FactoryProgramID namespaces sale address derivation.
var FactoryProgramID = keyFromSeed("launchpad/factory/v1")

// Default fee recipients, baked-in policy addresses.
var (
	DefaultPrimaryFeeRecipient   = keyFromSeed("launchpad/fee/primary")
	DefaultSecondaryFeeRecipient = keyFromSeed("launchpad/fee/secondary")
)

func keyFromSeed(seed string) solanago.PublicKey {
	sum := sha256.Sum256([]byte(seed))
	return solanago.PublicKeyFromBytes(sum[:])
}

var saleSeed = []byte("sale")

// PredictAddress derives a sale's address purely from (factory identity,
// creator, nonce, parameter digest). The same inputs produce the same address
// whether or not the sale has been materialized yet.
func PredictAddress(programID, creator solanago.PublicKey, name, symbol string, nonce uint64, cfg CurveConfig) (solanago.PublicKey, error) {
	var nonceLE [8]byte
	binary.LittleEndian.PutUint64(nonceLE[:], nonce)

	ident := sha256.Sum256([]byte(name + "\x00" + symbol))
	params := cfg.digest()

	pub, _, err := solanago.FindProgramAddress([][]byte{
		saleSeed,
		creator.Bytes(),
		nonceLE[:],
		ident[:],
		params[:],
	}, programID)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	return pub, nil
}

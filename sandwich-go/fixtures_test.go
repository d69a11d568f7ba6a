package sandwichgo

import (
	"encoding/hex"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// testKey derives a deterministic public key from a single seed byte.
func testKey(seed byte) solana.PublicKey {
	var b [32]byte
	b[0] = seed
	b[31] = seed
	return solana.PublicKeyFromBytes(b[:])
}

// instData builds instruction data starting with the Anchor sighash for name,
// followed by any extra payload bytes.
func instData(t *testing.T, name string, extra ...byte) solana.Base58 {
	t.Helper()
	raw, err := hex.DecodeString(AnchorDiscriminator(name))
	if err != nil {
		t.Fatalf("decode discriminator for %s: %v", name, err)
	}
	return solana.Base58(append(raw, extra...))
}

// makeTx assembles a minimal signed transaction over the given account keys.
// The first key is the fee payer.
func makeTx(keys []solana.PublicKey, insts []solana.CompiledInstruction) *solana.Transaction {
	var sig solana.Signature
	sig[0] = 0xAB

	return &solana.Transaction{
		Signatures: []solana.Signature{sig},
		Message: solana.Message{
			Header: solana.MessageHeader{
				NumRequiredSignatures: 1,
			},
			AccountKeys:  keys,
			Instructions: insts,
		},
	}
}

// tokenBalance builds a pre/post token-balance row.
func tokenBalance(accountIndex uint16, mint solana.PublicKey, owner solana.PublicKey, rawAmount string) rpc.TokenBalance {
	o := owner
	return rpc.TokenBalance{
		AccountIndex: accountIndex,
		Mint:         mint,
		Owner:        &o,
		UiTokenAmount: &rpc.UiTokenAmount{
			Amount:   rawAmount,
			Decimals: 9,
		},
	}
}

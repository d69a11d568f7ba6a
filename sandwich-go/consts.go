// consts.go
package sandwichgo

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gagliardetto/solana-go"
)

var (
	// TARGET_PROGRAM_ID is the on-chain sandwich strategy program whose
	// instructions this package classifies.
	TARGET_PROGRAM_ID = solana.MustPublicKeyFromBase58("vpeNALD89BZ4KxNUFjdLmFXBCwtyqBDQ85ouNoax38b")

	WSOL_MINT_PROGRAM_ID = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")

	// HOLDING_ACCOUNT is the strategy's own treasury. Swaps attributed to it
	// are strategy-internal rebalances, not victim trades, and are dropped.
	HOLDING_ACCOUNT = solana.MustPublicKeyFromBase58("DKLvbSugkGMf4PBMakfHW9BdvcYj7Y7FRbsiL6v5DRy2")
)

const (
	WSOL_MINT = "So11111111111111111111111111111111111111112"

	// VOTE_PROGRAM_MARKER shows up in log messages of vote transactions.
	VOTE_PROGRAM_MARKER = "Vote111111111111111111111111111111111111111"

	// MIN_JITO_TIP is the smallest lamport increase counted as a relay tip.
	MIN_JITO_TIP uint64 = 1000

	// BASE_FEE_LAMPORTS is the per-signature base fee estimate used in
	// SOL profit math.
	BASE_FEE_LAMPORTS uint64 = 5000

	LAMPORTS_PER_SOL = 1_000_000_000
)

// JITO_TIP_ADDRESSES is the canonical mainnet set of Jito tip accounts.
var JITO_TIP_ADDRESSES = map[string]bool{
	"96gYZGLnJYVFmbjzopPSU6QiEV5fGqZNyN9nmNhvrZU5": true,
	"HFqU5x63VTqvQss8hp11i4wVV8bD44PvwucfZ2bU7gRe": true,
	"Cw8CFyM9FkoMi7K7Crf6HNQqf4uEMzpKw6QNghXLvLkY": true,
	"ADaUMid9yfUytqMBgopwjb2DTLSokTSzL1zt6iGPaS49": true,
	"DfXygSm4jCyNCybVYYK6DwvWqjKee8pbDmJGcLWNDXjh": true,
	"ADuUkR4vqLUMWXxW9gh6D6L8pMSawimctcNZ5pGwDcEt": true,
	"DttWaMuVvTiduZRnguLF7jNxTgiMBZ1hyAumKUiL2KRL": true,
	"3AVi9Tg9Uo68tJfuvoKvqKNWKkC5wPdSSdeBnizKZ6jT": true,
}

// InstructionType is the closed set of target-program instruction kinds.
type InstructionType int

const (
	InstructionUnknown InstructionType = iota
	InstructionCreateSandwichV2
	InstructionAutoSwapIn
	InstructionAutoSwapOut
)

func (t InstructionType) String() string {
	switch t {
	case InstructionCreateSandwichV2:
		return "CreateSandwichV2"
	case InstructionAutoSwapIn:
		return "AutoSwapIn"
	case InstructionAutoSwapOut:
		return "AutoSwapOut"
	default:
		return "Unknown"
	}
}

// sandwichAccountSlots is the ordered list of candidate positions, within the
// instruction's account list, where the sandwich account may live for this
// instruction kind. The first in-range slot wins.
func (t InstructionType) sandwichAccountSlots() []int {
	switch t {
	case InstructionCreateSandwichV2:
		return []int{2}
	case InstructionAutoSwapIn, InstructionAutoSwapOut:
		return []int{6, 7}
	default:
		return nil
	}
}

// normalizeWsolChange applies the per-kind sign convention to a wSOL balance
// delta: on AutoSwapIn an increase is positive (wSOL received), on AutoSwapOut
// a decrease is positive (wSOL sent). Positive always means the flow the
// attacker intended for that leg.
func (t InstructionType) normalizeWsolChange(pre, post float64) (float64, bool) {
	switch t {
	case InstructionAutoSwapIn:
		return post - pre, true
	case InstructionAutoSwapOut:
		return pre - post, true
	default:
		return 0, false
	}
}

// AnchorDiscriminator returns the hex-encoded 8-byte Anchor sighash for a
// global instruction name (sha256("global:<name>")[:8]).
func AnchorDiscriminator(name string) string {
	h := sha256.Sum256([]byte("global:" + name))
	return hex.EncodeToString(h[:8])
}

// INSTRUCTION_DISCRIMINATORS maps hex-encoded discriminators to instruction
// kinds. Discriminators absent from this table are ignored by classification,
// so new entries can be added without changing behavior for unknown ones.
var INSTRUCTION_DISCRIMINATORS = map[string]InstructionType{
	AnchorDiscriminator("create_sandwich_v2"): InstructionCreateSandwichV2,
	AnchorDiscriminator("auto_swap_in"):       InstructionAutoSwapIn,
	AnchorDiscriminator("auto_swap_out"):      InstructionAutoSwapOut,
}

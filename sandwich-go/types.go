package sandwichgo

// ClassifiedTransaction is one observed invocation of the target program
// within one transaction. Everything except the swap-derived fields comes
// straight from the transaction; swap and tip fields stay at their zero
// values when inference fails, which is a valid non-error state.
type ClassifiedTransaction struct {
	Signature   string
	Signer      string
	BlockHeight uint64
	BlockTime   int64 // unix seconds, 0 when the block carried no time

	InstructionType InstructionType

	// SandwichAcc is the ephemeral account linking the three legs of one
	// attack. Empty means unresolvable; empty keys never correlate.
	SandwichAcc string

	// Swap economics inferred from token-balance deltas (raw base units).
	Swapper    string
	FromMint   string
	ToMint     string
	FromAmount uint64
	ToAmount   uint64

	// Decimals of the traded mint; provisional 9 until the resolver
	// back-fills the authoritative value.
	Decimals uint8

	JitoTipAmount uint64

	// WsolChange is the wSOL delta attributed to the swap, in SOL, with the
	// per-kind sign convention applied (see InstructionType.normalizeWsolChange).
	WsolChange float64

	// LamportChange is post-pre native balance of the signer.
	LamportChange int64
}

// SwapInfo is the ephemeral result of swap inference. It is consumed
// immediately into a ClassifiedTransaction and never persisted.
type SwapInfo struct {
	Swapper    string
	FromMint   string
	ToMint     string
	FromAmount uint64
	ToAmount   uint64
	WsolChange float64
	Decimals   uint8
}

package sandwichgo

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"
)

// Pattern is a completed sandwich attack: a Create, AutoSwapIn, AutoSwapOut
// triple sharing one sandwich account. Immutable once constructed.
type Pattern struct {
	token    string
	attacker string
	victim   string

	create  ClassifiedTransaction
	swapIn  ClassifiedTransaction
	swapOut ClassifiedTransaction
}

// NewPattern validates and assembles a pattern from its three legs. It fails
// when the legs disagree on the sandwich account, arrive out of time order,
// or carry no token identity at all. Failed candidates are discarded by the
// caller, never retried.
func NewPattern(create, swapIn, swapOut ClassifiedTransaction) (*Pattern, error) {
	if create.SandwichAcc == "" ||
		create.SandwichAcc != swapIn.SandwichAcc ||
		swapIn.SandwichAcc != swapOut.SandwichAcc {
		return nil, fmt.Errorf("sandwich account mismatch across legs")
	}

	if create.BlockTime > swapIn.BlockTime || swapIn.BlockTime > swapOut.BlockTime {
		return nil, fmt.Errorf("legs out of temporal order")
	}

	token := swapIn.FromMint
	if token == "" {
		token = swapOut.FromMint
	}
	if token == "" {
		return nil, fmt.Errorf("no token identity on either swap leg")
	}

	return &Pattern{
		token:    token,
		attacker: create.Signer,
		victim:   swapIn.Swapper,
		create:   create,
		swapIn:   swapIn,
		swapOut:  swapOut,
	}, nil
}

func (p *Pattern) Token() string    { return p.token }
func (p *Pattern) Attacker() string { return p.attacker }
func (p *Pattern) Victim() string   { return p.victim }

func (p *Pattern) CreateTx() ClassifiedTransaction  { return p.create }
func (p *Pattern) SwapInTx() ClassifiedTransaction  { return p.swapIn }
func (p *Pattern) SwapOutTx() ClassifiedTransaction { return p.swapOut }

// IsValid re-checks the structural invariants: key equality, same-block
// membership, and from==to mint within each swap leg. Cross-leg mint equality
// is deliberately not required.
func (p *Pattern) IsValid() bool {
	if p.create.SandwichAcc == "" {
		return false
	}
	if p.create.SandwichAcc != p.swapIn.SandwichAcc || p.swapIn.SandwichAcc != p.swapOut.SandwichAcc {
		return false
	}
	if p.create.BlockHeight != p.swapIn.BlockHeight || p.swapIn.BlockHeight != p.swapOut.BlockHeight {
		return false
	}
	if p.swapIn.FromMint != p.swapIn.ToMint || p.swapOut.FromMint != p.swapOut.ToMint {
		return false
	}
	return true
}

// TokenProfit is swap_out.from_amount - swap_in.from_amount in raw base
// units, or zero for an invalid pattern.
func (p *Pattern) TokenProfit() *big.Int {
	if !p.IsValid() {
		return big.NewInt(0)
	}
	out := new(big.Int).SetUint64(p.swapOut.FromAmount)
	in := new(big.Int).SetUint64(p.swapIn.FromAmount)
	return out.Sub(out, in)
}

// SolProfit is the attacker's realized SOL gain: wSOL received on exit minus
// wSOL committed on entry, minus the exit leg's Jito tip and two base fees.
func (p *Pattern) SolProfit() float64 {
	return math.Abs(p.swapOut.WsolChange) -
		math.Abs(p.swapIn.WsolChange) -
		float64(p.swapOut.JitoTipAmount)/LAMPORTS_PER_SOL -
		2*float64(BASE_FEE_LAMPORTS)/LAMPORTS_PER_SOL
}

// IsProfitable reports whether the attacker exited with more of the token
// than it put in. Requires both swap legs to carry amounts.
func (p *Pattern) IsProfitable() bool {
	return p.swapIn.FromAmount > 0 &&
		p.swapOut.FromAmount > 0 &&
		p.swapOut.FromAmount > p.swapIn.FromAmount
}

// Summary renders the pattern for human consumption. Pure projection.
func (p *Pattern) Summary() string {
	decimals := p.swapIn.Decimals
	if p.swapIn.FromMint == "" {
		decimals = p.swapOut.Decimals
	}

	tokenProfit := new(big.Float).SetInt(p.TokenProfit())
	tokenProfit.Quo(tokenProfit, big.NewFloat(math.Pow10(int(decimals))))
	tokenProfitF, _ := tokenProfit.Float64()

	victim := p.victim
	if victim == "" {
		victim = "unknown"
	}

	blockTime := "n/a"
	if p.create.BlockTime > 0 {
		blockTime = time.Unix(p.create.BlockTime, 0).UTC().Format("2006-01-02 15:04:05 UTC")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Sandwich Pattern Detected\n")
	fmt.Fprintf(&b, "Token:          %s\n", p.token)
	fmt.Fprintf(&b, "Token Profit:   %.6f (decimals=%d)\n", tokenProfitF, decimals)
	fmt.Fprintf(&b, "SOL Profit:     %.9f\n", p.SolProfit())
	fmt.Fprintf(&b, "Attacker:       %s\n", p.attacker)
	fmt.Fprintf(&b, "Victim:         %s\n", victim)
	fmt.Fprintf(&b, "Block Height:   %d\n", p.create.BlockHeight)
	fmt.Fprintf(&b, "Block Time:     %s\n", blockTime)
	fmt.Fprintf(&b, "Create:         %s\n", p.create.Signature)
	fmt.Fprintf(&b, "SwapIn:         %s\n", p.swapIn.Signature)
	fmt.Fprintf(&b, "SwapOut:        %s", p.swapOut.Signature)
	return b.String()
}

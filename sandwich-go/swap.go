package sandwichgo

import (
	"math"
	"sort"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// provisionalDecimals is assumed for every mint during inference; the
// authoritative value is back-filled later from the mint account.
const provisionalDecimals = 9

// findTokenAccounts infers the swap executed by one instruction from the
// transaction's pre/post token-balance snapshots. Only accounts referenced by
// the instruction participate. Balance deltas are visited in ascending
// account-index order so that every "first match" below is deterministic.
// Returns nil when no decrease/increase pair exists for the primary mint or
// when the inferred swapper is the strategy's own holding account.
func (c *Classifier) findTokenAccounts(
	inst solana.CompiledInstruction,
	preTokenBalances []rpc.TokenBalance,
	postTokenBalances []rpc.TokenBalance,
	instType InstructionType,
) *SwapInfo {
	relevantAccounts := make(map[int]bool)
	for _, idx := range inst.Accounts {
		accountIdx := int(idx)
		if accountIdx < len(c.allAccountKeys) {
			relevantAccounts[accountIdx] = true
		}
	}

	preMap := make(map[int]rpc.TokenBalance)
	for _, b := range preTokenBalances {
		if relevantAccounts[int(b.AccountIndex)] {
			preMap[int(b.AccountIndex)] = b
		}
	}
	postMap := make(map[int]rpc.TokenBalance)
	for _, b := range postTokenBalances {
		if relevantAccounts[int(b.AccountIndex)] {
			postMap[int(b.AccountIndex)] = b
		}
	}

	indices := make([]int, 0, len(preMap))
	for idx := range preMap {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	type mintChange struct {
		change float64
		index  int
	}

	// Identify the primary token being swapped: the non-wSOL mint with the
	// largest absolute change. wSOL is the price side, never the primary leg.
	mintChanges := make(map[string][]mintChange)
	primaryMint := ""
	maxAbsChange := 0.0

	for _, idx := range indices {
		preBalance := preMap[idx]
		postBalance, ok := postMap[idx]
		if !ok {
			continue
		}

		preAmount := parseRawAmount(preBalance.UiTokenAmount)
		postAmount := parseRawAmount(postBalance.UiTokenAmount)
		change := postAmount - preAmount

		if math.Abs(change) == 0 || preBalance.Mint.String() == WSOL_MINT {
			continue
		}
		mint := preBalance.Mint.String()
		if math.Abs(change) > maxAbsChange {
			maxAbsChange = math.Abs(change)
			primaryMint = mint
		}
		mintChanges[mint] = append(mintChanges[mint], mintChange{change: change, index: idx})
	}

	if primaryMint == "" {
		return nil
	}

	// Owners of the accounts that moved the primary mint; wSOL movement only
	// counts when it belongs to one of them.
	primaryOwners := make(map[string]bool)
	for _, mc := range mintChanges[primaryMint] {
		if pre, ok := preMap[mc.index]; ok && pre.Owner != nil {
			primaryOwners[pre.Owner.String()] = true
		}
	}

	var wsolChange float64
	for _, idx := range indices {
		preBalance := preMap[idx]
		postBalance, ok := postMap[idx]
		if !ok || preBalance.Mint.String() != WSOL_MINT {
			continue
		}
		if preBalance.Owner == nil || !primaryOwners[preBalance.Owner.String()] {
			continue
		}

		preAmount := parseRawAmount(preBalance.UiTokenAmount)
		postAmount := parseRawAmount(postBalance.UiTokenAmount)
		if normalized, ok := instType.normalizeWsolChange(preAmount, postAmount); ok {
			wsolChange = normalized
		}
		break // one relevant wSOL change per instruction
	}

	changes := mintChanges[primaryMint]
	var decrease, increase *mintChange
	for i := range changes {
		if decrease == nil && changes[i].change < 0 {
			decrease = &changes[i]
		}
		if increase == nil && changes[i].change > 0 {
			increase = &changes[i]
		}
	}
	if decrease == nil || increase == nil {
		return nil
	}

	swapInfo := &SwapInfo{
		FromMint:   primaryMint,
		ToMint:     primaryMint,
		FromAmount: uint64(math.Abs(decrease.change) * math.Pow10(provisionalDecimals)),
		ToAmount:   uint64(increase.change * math.Pow10(provisionalDecimals)),
		WsolChange: wsolChange,
		Decimals:   provisionalDecimals,
	}

	if pre, ok := preMap[decrease.index]; ok && pre.Owner != nil {
		swapInfo.Swapper = pre.Owner.String()
	}

	if swapInfo.Swapper == HOLDING_ACCOUNT.String() {
		c.Log.Debugf("filtered out swap involving holding account: %s", swapInfo.Swapper)
		return nil
	}

	return swapInfo
}

// parseRawAmount converts a raw base-unit amount string to lamport-equivalent
// units (divided by 1e9), the convention all delta comparisons use.
func parseRawAmount(amount *rpc.UiTokenAmount) float64 {
	if amount == nil {
		return 0
	}
	raw, err := strconv.ParseFloat(amount.Amount, 64)
	if err != nil {
		return 0
	}
	return raw / 1e9
}

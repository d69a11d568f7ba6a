package sandwichgo

import "github.com/gagliardetto/solana-go"

// DetectJitoTip sums lamports sent to known Jito tip accounts by comparing
// pre- and post-balances. A balance decrease never counts as a tip, and
// increases below MIN_JITO_TIP are ignored. Pure function; balance vectors
// shorter than the key list are tolerated by stopping at the shorter length.
func DetectJitoTip(accountKeys solana.PublicKeySlice, preBalances, postBalances []uint64) uint64 {
	var totalTip uint64

	for i, key := range accountKeys {
		if i >= len(preBalances) || i >= len(postBalances) {
			break
		}

		var diff uint64
		if postBalances[i] > preBalances[i] {
			diff = postBalances[i] - preBalances[i]
		}

		if diff >= MIN_JITO_TIP && JITO_TIP_ADDRESSES[key.String()] {
			totalTip += diff
		}
	}

	return totalTip
}

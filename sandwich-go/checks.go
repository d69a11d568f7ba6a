// checks.go
package sandwichgo

import (
	"encoding/hex"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/mr-tron/base58"
)

// IsTransactionSuccessful reports whether the transaction executed without error.
func IsTransactionSuccessful(meta *rpc.TransactionMeta) bool {
	return meta != nil && meta.Err == nil
}

// IsVoteTransaction detects consensus vote transactions from log messages.
func IsVoteTransaction(logs []string) bool {
	for _, log := range logs {
		if strings.Contains(log, VOTE_PROGRAM_MARKER) {
			return true
		}
	}
	return false
}

// MentionsTargetProgram reports whether the target program shows up in the
// transaction's log messages. Used as a cheap pre-filter before decoding.
func MentionsTargetProgram(logs []string) bool {
	target := TARGET_PROGRAM_ID.String()
	for _, log := range logs {
		if strings.Contains(log, target) {
			return true
		}
	}
	return false
}

// instructionDiscriminator extracts the hex-encoded 8-byte discriminator from
// an instruction's data. Instructions with fewer than 8 data bytes cannot be
// classified.
func instructionDiscriminator(inst solana.CompiledInstruction) (string, bool) {
	enc := inst.Data.String()
	if len(enc) == 0 {
		return "", false
	}
	decodedBytes, err := base58.Decode(enc)
	if err != nil || len(decodedBytes) < 8 {
		return "", false
	}
	return hex.EncodeToString(decodedBytes[:8]), true
}

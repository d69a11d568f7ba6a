// Package store persists completed sandwich patterns. Persistence is
// best-effort from the detector's point of view: a failed save is logged by
// the caller and never aborts block processing.
package store

import (
	"context"

	sandwichgo "github.com/franco-bianco/sandwich-go/sandwich-go"
)

// PatternRecord is a flattened, storage-friendly projection of a completed
// pattern.
type PatternRecord struct {
	Token    string
	Attacker string
	Victim   string

	Slot      uint64
	BlockTime int64

	CreateSignature  string
	SwapInSignature  string
	SwapOutSignature string

	// TokenProfit is in raw base units of Token.
	TokenProfit int64
	SolProfit   float64
	TipLamports uint64
}

// RecordFromPattern flattens a pattern for storage.
func RecordFromPattern(p sandwichgo.Pattern) PatternRecord {
	return PatternRecord{
		Token:            p.Token(),
		Attacker:         p.Attacker(),
		Victim:           p.Victim(),
		Slot:             p.CreateTx().BlockHeight,
		BlockTime:        p.CreateTx().BlockTime,
		CreateSignature:  p.CreateTx().Signature,
		SwapInSignature:  p.SwapInTx().Signature,
		SwapOutSignature: p.SwapOutTx().Signature,
		TokenProfit:      p.TokenProfit().Int64(),
		SolProfit:        p.SolProfit(),
		TipLamports:      p.SwapOutTx().JitoTipAmount,
	}
}

// PatternStore is implemented by Postgres and Memory.
type PatternStore interface {
	Save(ctx context.Context, records []PatternRecord) error
	BySlot(ctx context.Context, slot uint64) ([]PatternRecord, error)
}

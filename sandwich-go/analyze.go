package sandwichgo

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"
)

// DecimalsResolver resolves a mint's decimal precision. Implementations are
// expected to memoize; the engine calls it once per classified swap leg.
type DecimalsResolver interface {
	GetOrResolve(ctx context.Context, mint string) (uint8, error)
}

// AnalyzeBlock runs the full detection pipeline over one block: filter to
// successful non-vote transactions touching the target program, classify,
// back-fill decimals, and feed the tracker in block order. Returns completed
// patterns in detection order. Missing or empty blocks yield no patterns.
func AnalyzeBlock(ctx context.Context, block *rpc.GetBlockResult, resolver DecimalsResolver, log *logrus.Logger) []Pattern {
	if block == nil || len(block.Transactions) == 0 {
		return nil
	}
	if log == nil {
		log = logrus.New()
	}

	var blockHeight uint64
	if block.BlockHeight != nil {
		blockHeight = *block.BlockHeight
	}
	var blockTime int64
	if block.BlockTime != nil {
		blockTime = block.BlockTime.Time().Unix()
	}

	tracker := NewPatternTracker()

	for i := range block.Transactions {
		txWithMeta := block.Transactions[i]
		meta := txWithMeta.Meta
		if !IsTransactionSuccessful(meta) {
			continue
		}
		if len(meta.LogMessages) == 0 || IsVoteTransaction(meta.LogMessages) || !MentionsTargetProgram(meta.LogMessages) {
			continue
		}

		tx, err := txWithMeta.GetTransaction()
		if err != nil || tx == nil {
			continue
		}

		analyzeTransaction(ctx, tracker, tx, meta, blockHeight, blockTime, resolver, log)
	}

	return tracker.CompletedPatterns()
}

// analyzeTransaction classifies one transaction, resolves decimals for any
// inferred swap legs, and advances the tracker. Resolution failures keep the
// provisional decimals and never block correlation.
func analyzeTransaction(
	ctx context.Context,
	tracker *PatternTracker,
	tx *solana.Transaction,
	meta *rpc.TransactionMeta,
	blockHeight uint64,
	blockTime int64,
	resolver DecimalsResolver,
	log *logrus.Logger,
) {
	classifier, err := NewClassifier(tx, meta)
	if err != nil {
		return
	}
	classifier.Log = log

	classifiedTxs := classifier.Classify(blockHeight, blockTime)

	for i := range classifiedTxs {
		classifiedTx := &classifiedTxs[i]
		if classifiedTx.FromMint == "" || resolver == nil {
			continue
		}
		decimals, err := resolver.GetOrResolve(ctx, classifiedTx.FromMint)
		if err != nil {
			log.WithError(err).Warnf("failed to fetch decimals for token %s", classifiedTx.FromMint)
			continue
		}
		classifiedTx.Decimals = decimals
	}

	for _, classifiedTx := range classifiedTxs {
		tracker.Process(classifiedTx)
	}
}

package sandwichgo

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"
)

// Classifier inspects one decoded transaction for invocations of the target
// program and maps each to a known instruction kind.
type Classifier struct {
	txInfo         *solana.Transaction
	txMeta         *rpc.TransactionMeta
	allAccountKeys solana.PublicKeySlice
	Log            *logrus.Logger
}

// NewClassifier builds a Classifier from a decoded transaction and its meta.
// Account keys are the message keys plus any addresses loaded from lookup
// tables, so legacy and versioned messages resolve to the same shape.
func NewClassifier(tx *solana.Transaction, txMeta *rpc.TransactionMeta) (*Classifier, error) {
	if tx == nil {
		return nil, fmt.Errorf("nil transaction")
	}

	allAccountKeys := tx.Message.AccountKeys
	if txMeta != nil {
		allAccountKeys = append(allAccountKeys, txMeta.LoadedAddresses.Writable...)
		allAccountKeys = append(allAccountKeys, txMeta.LoadedAddresses.ReadOnly...)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	return &Classifier{
		txInfo:         tx,
		txMeta:         txMeta,
		allAccountKeys: allAccountKeys,
		Log:            log,
	}, nil
}

// Classify returns one ClassifiedTransaction per recognized target-program
// instruction. A transaction that cannot be classified yields an empty slice,
// never an error: malformed instructions are skipped, and missing swap
// economics leave the swap fields at their zero values.
func (c *Classifier) Classify(blockHeight uint64, blockTime int64) []ClassifiedTransaction {
	var found []ClassifiedTransaction
	processedTypes := make(map[string]bool)

	signature := ""
	if len(c.txInfo.Signatures) > 0 {
		signature = c.txInfo.Signatures[0].String()
	}

	// The fee payer is the signer only when the header declares at least one
	// required signature. Downstream signer-dependent fields degrade to their
	// defaults when it cannot be resolved.
	signer := ""
	signerIndex := -1
	numSigners := int(c.txInfo.Message.Header.NumRequiredSignatures)
	if numSigners > 0 && len(c.allAccountKeys) >= numSigners {
		signer = c.allAccountKeys[0].String()
		signerIndex = 0
	}

	targetProgramIdx := -1
	for i, key := range c.allAccountKeys {
		if key.Equals(TARGET_PROGRAM_ID) {
			targetProgramIdx = i
			break
		}
	}
	if targetProgramIdx < 0 {
		return nil
	}

	var preTokenBalances, postTokenBalances []rpc.TokenBalance
	var jitoTipAmount uint64
	var lamportChange int64
	if c.txMeta != nil {
		preTokenBalances = c.txMeta.PreTokenBalances
		postTokenBalances = c.txMeta.PostTokenBalances
		jitoTipAmount = DetectJitoTip(c.allAccountKeys, c.txMeta.PreBalances, c.txMeta.PostBalances)
		if signerIndex >= 0 && signerIndex < len(c.txMeta.PreBalances) && signerIndex < len(c.txMeta.PostBalances) {
			lamportChange = int64(c.txMeta.PostBalances[signerIndex]) - int64(c.txMeta.PreBalances[signerIndex])
		}
	}

	for _, inst := range c.txInfo.Message.Instructions {
		if int(inst.ProgramIDIndex) != targetProgramIdx {
			continue
		}

		hexData, ok := instructionDiscriminator(inst)
		if !ok {
			continue
		}

		// A legitimate attack cycle contains at most one instance of each
		// instruction kind per transaction; repeats are batching noise.
		if processedTypes[hexData] {
			continue
		}

		instType, known := INSTRUCTION_DISCRIMINATORS[hexData]
		if !known {
			continue
		}
		processedTypes[hexData] = true

		classifiedTx := ClassifiedTransaction{
			Signature:       signature,
			Signer:          signer,
			BlockHeight:     blockHeight,
			BlockTime:       blockTime,
			InstructionType: instType,
			SandwichAcc:     c.resolveSandwichAccount(inst, instType),
			Decimals:        9,
			JitoTipAmount:   jitoTipAmount,
			LamportChange:   lamportChange,
		}

		if swapInfo := c.findTokenAccounts(inst, preTokenBalances, postTokenBalances, instType); swapInfo != nil {
			classifiedTx.Swapper = swapInfo.Swapper
			classifiedTx.FromMint = swapInfo.FromMint
			classifiedTx.ToMint = swapInfo.ToMint
			classifiedTx.FromAmount = swapInfo.FromAmount
			classifiedTx.ToAmount = swapInfo.ToAmount
			classifiedTx.WsolChange = swapInfo.WsolChange
			classifiedTx.Decimals = swapInfo.Decimals
		}

		found = append(found, classifiedTx)
	}

	return found
}

// resolveSandwichAccount walks the instruction kind's candidate slots and
// returns the first resolvable account. Short account lists leave the key
// empty rather than failing the transaction.
func (c *Classifier) resolveSandwichAccount(inst solana.CompiledInstruction, instType InstructionType) string {
	for _, slot := range instType.sandwichAccountSlots() {
		if slot >= len(inst.Accounts) {
			continue
		}
		accountIdx := int(inst.Accounts[slot])
		if accountIdx < len(c.allAccountKeys) {
			return c.allAccountKeys[accountIdx].String()
		}
	}
	return ""
}

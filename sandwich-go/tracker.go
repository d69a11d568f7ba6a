package sandwichgo

// PatternTracker correlates classified transactions within one block into
// completed sandwich patterns. Per sandwich account the lifecycle is
// absent -> open (Create seen) -> pending (Create+SwapIn seen) -> absent
// (SwapOut completed a pattern, or the key was abandoned in place).
//
// The tracker requires transactions in block order: a SwapIn delivered before
// its Create is dropped. It never errors; unmatched partial sequences are
// simply abandoned, which is the intended behavior for a best-effort
// streaming detector. State is scoped to one block.
type PatternTracker struct {
	open      map[string]ClassifiedTransaction
	pending   map[string]pendingPair
	completed []Pattern
}

type pendingPair struct {
	create ClassifiedTransaction
	swapIn ClassifiedTransaction
}

func NewPatternTracker() *PatternTracker {
	return &PatternTracker{
		open:    make(map[string]ClassifiedTransaction),
		pending: make(map[string]pendingPair),
	}
}

// Process advances the state machine with one classified transaction.
func (t *PatternTracker) Process(tx ClassifiedTransaction) {
	// An empty sandwich account would spuriously unify unrelated
	// transactions; treat it as never-matching.
	if tx.SandwichAcc == "" {
		return
	}

	switch tx.InstructionType {
	case InstructionCreateSandwichV2:
		// A newer Create for the same ephemeral account supersedes an older
		// unmatched one.
		t.open[tx.SandwichAcc] = tx

	case InstructionAutoSwapIn:
		create, ok := t.open[tx.SandwichAcc]
		if !ok {
			return
		}
		delete(t.open, tx.SandwichAcc)
		t.pending[tx.SandwichAcc] = pendingPair{create: create, swapIn: tx}

	case InstructionAutoSwapOut:
		pair, ok := t.pending[tx.SandwichAcc]
		if !ok {
			return
		}
		delete(t.pending, tx.SandwichAcc)
		if pattern, err := NewPattern(pair.create, pair.swapIn, tx); err == nil {
			t.completed = append(t.completed, *pattern)
		}
	}
}

// CompletedPatterns returns completed patterns in detection order.
func (t *PatternTracker) CompletedPatterns() []Pattern {
	return t.completed
}

// ClearCompleted resets the completed list without touching in-flight state.
func (t *PatternTracker) ClearCompleted() {
	t.completed = nil
}

package sandwichgo

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

func TestClassify_CreateInstruction(t *testing.T) {
	signer := testKey(1)
	sandwichAcc := testKey(2)
	keys := []solana.PublicKey{signer, testKey(3), sandwichAcc, TARGET_PROGRAM_ID}

	tx := makeTx(keys, []solana.CompiledInstruction{{
		ProgramIDIndex: 3,
		Accounts:       []uint16{0, 1, 2},
		Data:           instData(t, "create_sandwich_v2"),
	}})

	c, err := NewClassifier(tx, &rpc.TransactionMeta{})
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	found := c.Classify(500, 1700000000)
	if len(found) != 1 {
		t.Fatalf("expected 1 classified tx, got %d", len(found))
	}

	got := found[0]
	if got.InstructionType != InstructionCreateSandwichV2 {
		t.Fatalf("type = %s", got.InstructionType)
	}
	if got.SandwichAcc != sandwichAcc.String() {
		t.Fatalf("sandwich acc = %s, want %s", got.SandwichAcc, sandwichAcc)
	}
	if got.Signer != signer.String() {
		t.Fatalf("signer = %s", got.Signer)
	}
	if got.Signature != tx.Signatures[0].String() {
		t.Fatalf("signature = %s", got.Signature)
	}
	if got.BlockHeight != 500 || got.BlockTime != 1700000000 {
		t.Fatalf("block fields not carried: %d / %d", got.BlockHeight, got.BlockTime)
	}
	if got.Decimals != 9 {
		t.Fatalf("provisional decimals = %d, want 9", got.Decimals)
	}
}

func TestClassify_ShortDataSkipped(t *testing.T) {
	keys := []solana.PublicKey{testKey(1), TARGET_PROGRAM_ID}

	tx := makeTx(keys, []solana.CompiledInstruction{{
		ProgramIDIndex: 1,
		Accounts:       []uint16{0},
		Data:           solana.Base58{1, 2, 3, 4, 5, 6, 7}, // 7 bytes
	}})

	c, _ := NewClassifier(tx, &rpc.TransactionMeta{})
	if found := c.Classify(1, 0); len(found) != 0 {
		t.Fatalf("7-byte instruction classified: %d", len(found))
	}
}

func TestClassify_UnknownDiscriminatorSkipped(t *testing.T) {
	keys := []solana.PublicKey{testKey(1), TARGET_PROGRAM_ID}

	tx := makeTx(keys, []solana.CompiledInstruction{{
		ProgramIDIndex: 1,
		Accounts:       []uint16{0},
		Data:           instData(t, "some_other_instruction"),
	}})

	c, _ := NewClassifier(tx, &rpc.TransactionMeta{})
	if found := c.Classify(1, 0); len(found) != 0 {
		t.Fatalf("unknown discriminator classified: %d", len(found))
	}
}

func TestClassify_DuplicateKindProcessedOnce(t *testing.T) {
	signer := testKey(1)
	keys := []solana.PublicKey{signer, testKey(2), testKey(3), TARGET_PROGRAM_ID}

	inst := solana.CompiledInstruction{
		ProgramIDIndex: 3,
		Accounts:       []uint16{0, 1, 2},
		Data:           instData(t, "create_sandwich_v2"),
	}
	tx := makeTx(keys, []solana.CompiledInstruction{inst, inst})

	c, _ := NewClassifier(tx, &rpc.TransactionMeta{})
	if found := c.Classify(1, 0); len(found) != 1 {
		t.Fatalf("duplicate kind classified %d times", len(found))
	}
}

func TestClassify_TargetProgramAbsent(t *testing.T) {
	keys := []solana.PublicKey{testKey(1), testKey(2)}

	tx := makeTx(keys, []solana.CompiledInstruction{{
		ProgramIDIndex: 1,
		Accounts:       []uint16{0},
		Data:           instData(t, "create_sandwich_v2"),
	}})

	c, _ := NewClassifier(tx, &rpc.TransactionMeta{})
	if found := c.Classify(1, 0); found != nil {
		t.Fatalf("classified against a transaction without the target program: %v", found)
	}
}

func TestClassify_OtherProgramInstructionIgnored(t *testing.T) {
	keys := []solana.PublicKey{testKey(1), testKey(2), TARGET_PROGRAM_ID}

	// Instruction data matches a known discriminator but the program is not
	// the target.
	tx := makeTx(keys, []solana.CompiledInstruction{{
		ProgramIDIndex: 1,
		Accounts:       []uint16{0},
		Data:           instData(t, "auto_swap_in"),
	}})

	c, _ := NewClassifier(tx, &rpc.TransactionMeta{})
	if found := c.Classify(1, 0); len(found) != 0 {
		t.Fatalf("foreign-program instruction classified: %d", len(found))
	}
}

func TestClassify_SwapInSandwichAccountSlot(t *testing.T) {
	signer := testKey(1)
	sandwichAcc := testKey(7)
	keys := []solana.PublicKey{signer, testKey(2), testKey(3), testKey(4), testKey(5), testKey(6), sandwichAcc, TARGET_PROGRAM_ID}

	tx := makeTx(keys, []solana.CompiledInstruction{{
		ProgramIDIndex: 7,
		Accounts:       []uint16{0, 1, 2, 3, 4, 5, 6},
		Data:           instData(t, "auto_swap_in"),
	}})

	c, _ := NewClassifier(tx, &rpc.TransactionMeta{})
	found := c.Classify(1, 0)
	if len(found) != 1 {
		t.Fatalf("expected 1 classified tx, got %d", len(found))
	}
	if found[0].SandwichAcc != sandwichAcc.String() {
		t.Fatalf("sandwich acc = %s, want slot 6 account %s", found[0].SandwichAcc, sandwichAcc)
	}
}

func TestClassify_SwapOutFallsBackToSlotSeven(t *testing.T) {
	signer := testKey(1)
	fallbackAcc := testKey(8)
	keys := []solana.PublicKey{signer, testKey(2), testKey(3), testKey(4), testKey(5), testKey(6), testKey(7), fallbackAcc, TARGET_PROGRAM_ID}

	// Slot 6 references an account index past the resolved key list, so the
	// fallback slot 7 must win.
	tx := makeTx(keys, []solana.CompiledInstruction{{
		ProgramIDIndex: 8,
		Accounts:       []uint16{0, 1, 2, 3, 4, 5, 99, 7},
		Data:           instData(t, "auto_swap_out"),
	}})

	c, _ := NewClassifier(tx, &rpc.TransactionMeta{})
	found := c.Classify(1, 0)
	if len(found) != 1 {
		t.Fatalf("expected 1 classified tx, got %d", len(found))
	}
	if found[0].SandwichAcc != fallbackAcc.String() {
		t.Fatalf("sandwich acc = %s, want fallback %s", found[0].SandwichAcc, fallbackAcc)
	}
}

func TestClassify_ShortAccountListLeavesKeyEmpty(t *testing.T) {
	keys := []solana.PublicKey{testKey(1), testKey(2), TARGET_PROGRAM_ID}

	tx := makeTx(keys, []solana.CompiledInstruction{{
		ProgramIDIndex: 2,
		Accounts:       []uint16{0, 1}, // too short for slot 2
		Data:           instData(t, "create_sandwich_v2"),
	}})

	c, _ := NewClassifier(tx, &rpc.TransactionMeta{})
	found := c.Classify(1, 0)
	if len(found) != 1 {
		t.Fatalf("expected 1 classified tx, got %d", len(found))
	}
	if found[0].SandwichAcc != "" {
		t.Fatalf("sandwich acc = %q, want empty", found[0].SandwichAcc)
	}
}

func TestClassify_LamportChangeAndTip(t *testing.T) {
	signer := testKey(1)
	tipAccount := solana.MustPublicKeyFromBase58("ADuUkR4vqLUMWXxW9gh6D6L8pMSawimctcNZ5pGwDcEt")
	keys := []solana.PublicKey{signer, testKey(2), testKey(3), tipAccount, TARGET_PROGRAM_ID}

	meta := &rpc.TransactionMeta{
		PreBalances:  []uint64{10_000_000, 0, 0, 1_000, 1},
		PostBalances: []uint64{8_000_000, 0, 0, 51_000, 1},
	}

	tx := makeTx(keys, []solana.CompiledInstruction{{
		ProgramIDIndex: 4,
		Accounts:       []uint16{0, 1, 2},
		Data:           instData(t, "create_sandwich_v2"),
	}})

	c, _ := NewClassifier(tx, meta)
	found := c.Classify(1, 0)
	if len(found) != 1 {
		t.Fatalf("expected 1 classified tx, got %d", len(found))
	}
	if found[0].LamportChange != -2_000_000 {
		t.Fatalf("lamport change = %d, want -2000000", found[0].LamportChange)
	}
	if found[0].JitoTipAmount != 50_000 {
		t.Fatalf("jito tip = %d, want 50000", found[0].JitoTipAmount)
	}
}

func TestClassify_LoadedAddressesExtendKeySpace(t *testing.T) {
	signer := testKey(1)
	loadedAcc := testKey(9)
	keys := []solana.PublicKey{signer, testKey(2), TARGET_PROGRAM_ID}

	meta := &rpc.TransactionMeta{
		LoadedAddresses: rpc.LoadedAddresses{
			Writable: solana.PublicKeySlice{loadedAcc},
		},
	}

	// Slot 2 points at the lookup-table address appended after message keys.
	tx := makeTx(keys, []solana.CompiledInstruction{{
		ProgramIDIndex: 2,
		Accounts:       []uint16{0, 1, 3},
		Data:           instData(t, "create_sandwich_v2"),
	}})

	c, err := NewClassifier(tx, meta)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	found := c.Classify(1, 0)
	if len(found) != 1 {
		t.Fatalf("expected 1 classified tx, got %d", len(found))
	}
	if found[0].SandwichAcc != loadedAcc.String() {
		t.Fatalf("sandwich acc = %s, want loaded address %s", found[0].SandwichAcc, loadedAcc)
	}
}

func TestClassify_DeterministicAcrossRuns(t *testing.T) {
	signer := testKey(1)
	keys := []solana.PublicKey{signer, testKey(2), testKey(3), TARGET_PROGRAM_ID}

	tx := makeTx(keys, []solana.CompiledInstruction{
		{
			ProgramIDIndex: 3,
			Accounts:       []uint16{0, 1, 2},
			Data:           instData(t, "create_sandwich_v2"),
		},
		{
			ProgramIDIndex: 3,
			Accounts:       []uint16{0, 1, 2, 0, 1, 2, 1},
			Data:           instData(t, "auto_swap_in"),
		},
	})

	c1, _ := NewClassifier(tx, &rpc.TransactionMeta{})
	first := c1.Classify(1, 0)

	for i := 0; i < 10; i++ {
		c, _ := NewClassifier(tx, &rpc.TransactionMeta{})
		got := c.Classify(1, 0)
		if len(got) != len(first) {
			t.Fatalf("run %d: %d classified, want %d", i, len(got), len(first))
		}
		for j := range got {
			if got[j] != first[j] {
				t.Fatalf("run %d diverged at %d: %+v vs %+v", i, j, got[j], first[j])
			}
		}
	}
}

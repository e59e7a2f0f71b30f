package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
)

// fakeInstructionStore 内存装入说明，按成品零件ID索引
type fakeInstructionStore struct {
	instructions map[uint]*entity.UsingInstruction
}

func (f *fakeInstructionStore) FindByDetail(ctx context.Context, detailID uint) (*entity.UsingInstruction, error) {
	return f.instructions[detailID], nil
}

func instructionOf(detailID uint, lines ...entity.UsingLine) *entity.UsingInstruction {
	return &entity.UsingInstruction{DetailManufacturedID: detailID, Lines: lines}
}

func TestExplodeOnceReplacesManufacturedDetail(t *testing.T) {
	// 自行车 = 2×车轮 + 1×车架；车轮和车架是原材料件
	store := &fakeInstructionStore{instructions: map[uint]*entity.UsingInstruction{
		1: instructionOf(1,
			entity.UsingLine{DetailID: 2, Amount: 2},
			entity.UsingLine{DetailID: 3, Amount: 1},
		),
	}}

	out, changed, err := explodeOnce(context.Background(), store, []Demand{{DetailID: 1, Amount: 3}})
	if err != nil {
		t.Fatalf("explodeOnce failed: %v", err)
	}
	if !changed {
		t.Fatal("expected changed=true when an instruction applies")
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 component demands, got %d", len(out))
	}
	if out[0].DetailID != 2 || out[0].Amount != 6 {
		t.Errorf("wheel demand = {%d %d}, want {2 6}", out[0].DetailID, out[0].Amount)
	}
	if out[1].DetailID != 3 || out[1].Amount != 3 {
		t.Errorf("frame demand = {%d %d}, want {3 3}", out[1].DetailID, out[1].Amount)
	}
}

func TestExplodeOnceKeepsRawDetails(t *testing.T) {
	store := &fakeInstructionStore{instructions: map[uint]*entity.UsingInstruction{}}

	out, changed, err := explodeOnce(context.Background(), store, []Demand{{DetailID: 7, Amount: 5}})
	if err != nil {
		t.Fatalf("explodeOnce failed: %v", err)
	}
	if changed {
		t.Error("expected changed=false for raw-only demands")
	}
	if len(out) != 1 || out[0].DetailID != 7 || out[0].Amount != 5 {
		t.Fatalf("raw demand altered: %+v", out)
	}
}

func TestExplodeToTerminalMergesByDetail(t *testing.T) {
	// 10 = 2×20 + 1×30；20 = 3×30；30 原材料
	store := &fakeInstructionStore{instructions: map[uint]*entity.UsingInstruction{
		10: instructionOf(10,
			entity.UsingLine{DetailID: 20, Amount: 2},
			entity.UsingLine{DetailID: 30, Amount: 1},
		),
		20: instructionOf(20, entity.UsingLine{DetailID: 30, Amount: 3}),
	}}

	merged, err := explodeToTerminal(context.Background(), store, []Demand{{DetailID: 10, Amount: 2}})
	if err != nil {
		t.Fatalf("explodeToTerminal failed: %v", err)
	}
	// 2×(2×3 + 1) = 14 个零件30
	if len(merged) != 1 {
		t.Fatalf("expected single terminal detail, got %v", merged)
	}
	if merged[30] != 14 {
		t.Errorf("merged[30] = %d, want 14", merged[30])
	}
}

func TestExplodeDetectsCycle(t *testing.T) {
	store := &fakeInstructionStore{instructions: map[uint]*entity.UsingInstruction{
		1: instructionOf(1, entity.UsingLine{DetailID: 2, Amount: 1}),
		2: instructionOf(2, entity.UsingLine{DetailID: 1, Amount: 1}),
	}}

	_, err := explodeToTerminal(context.Background(), store, []Demand{{DetailID: 1, Amount: 1}})
	if !errors.Is(err, ErrCyclicInstruction) {
		t.Fatalf("expected ErrCyclicInstruction, got %v", err)
	}
}

func TestExplodeSelfReferenceIsCycle(t *testing.T) {
	store := &fakeInstructionStore{instructions: map[uint]*entity.UsingInstruction{
		5: instructionOf(5, entity.UsingLine{DetailID: 5, Amount: 2}),
	}}

	_, _, err := explodeOnce(context.Background(), store, []Demand{{DetailID: 5, Amount: 1}})
	if !errors.Is(err, ErrCyclicInstruction) {
		t.Fatalf("expected ErrCyclicInstruction, got %v", err)
	}
}

func TestExplodeTerminatesOnDeepChain(t *testing.T) {
	// 1→2→3→...→50，线性链在深度次迭代内收敛
	instructions := make(map[uint]*entity.UsingInstruction)
	for id := uint(1); id < 50; id++ {
		instructions[id] = instructionOf(id, entity.UsingLine{DetailID: id + 1, Amount: 1})
	}
	store := &fakeInstructionStore{instructions: instructions}

	merged, err := explodeToTerminal(context.Background(), store, []Demand{{DetailID: 1, Amount: 1}})
	if err != nil {
		t.Fatalf("explodeToTerminal failed: %v", err)
	}
	if merged[50] != 1 {
		t.Errorf("merged[50] = %d, want 1", merged[50])
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
)

// InstructionStore 装入说明只读面（§零件→至多一条装入说明）
type InstructionStore interface {
	FindByDetail(ctx context.Context, detailID uint) (*entity.UsingInstruction, error)
}

// ErrCyclicInstruction 装入说明构成环，分解无法收敛。
// 属于数据损坏，不是用户输入错误。
var ErrCyclicInstruction = errors.New("装入说明存在循环引用")

// Demand 一条待满足的需求：某零件的若干数量。
// path记录该需求的分解来源链（祖先零件），分解时原样下传，用于环检测。
type Demand struct {
	DetailID uint `json:"detail_pk"`
	Amount   int  `json:"amount"`

	path []uint
}

// explodeOnce 对需求清单做一轮分解：有装入说明的条目替换为其组成件需求
// （数量 = 单件用量 × 条目数量），没有说明的条目（原材料件）原样保留。
// 只展开一层，不递归；由调用方迭代到不动点，这样每一层只分解仍未满足的残量。
func explodeOnce(ctx context.Context, store InstructionStore, demands []Demand) ([]Demand, bool, error) {
	out := make([]Demand, 0, len(demands))
	changed := false

	for _, d := range demands {
		instruction, err := store.FindByDetail(ctx, d.DetailID)
		if err != nil {
			return nil, false, fmt.Errorf("查询装入说明失败: %w", err)
		}
		if instruction == nil || len(instruction.Lines) == 0 {
			out = append(out, d)
			continue
		}

		lineage := make([]uint, 0, len(d.path)+1)
		lineage = append(lineage, d.path...)
		lineage = append(lineage, d.DetailID)

		for _, line := range instruction.Lines {
			for _, ancestor := range lineage {
				if ancestor == line.DetailID {
					return nil, false, fmt.Errorf("%w: 零件 %d", ErrCyclicInstruction, line.DetailID)
				}
			}
			out = append(out, Demand{
				DetailID: line.DetailID,
				Amount:   line.Amount * d.Amount,
				path:     lineage,
			})
		}
		changed = true
	}

	return out, changed, nil
}

// explodeToTerminal 将需求完全分解到原材料件，按零件合并数量。
// 盘存清单的预乘行生成复用这条路径。
func explodeToTerminal(ctx context.Context, store InstructionStore, demands []Demand) (map[uint]int, error) {
	for {
		exploded, changed, err := explodeOnce(ctx, store, demands)
		if err != nil {
			return nil, err
		}
		demands = exploded
		if !changed {
			break
		}
	}

	merged := make(map[uint]int, len(demands))
	for _, d := range demands {
		merged[d.DetailID] += d.Amount
	}
	return merged, nil
}

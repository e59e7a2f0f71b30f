package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/redis/go-redis/v9"
)

// ErrNoPriorVedomost 请求日期之前该车间没有任何盘存清单，
// 没有结存的起算基准。面向用户的空结果错误。
var ErrNoPriorVedomost = errors.New("no prior inventory count")

// VedomostStore 结存计算所需的盘存只读面
type VedomostStore interface {
	LatestBefore(ctx context.Context, workshopID uint, date time.Time) (*entity.Vedomost, error)
}

// ReportStore 结存计算所需的转运单只读面
type ReportStore interface {
	LinesSentBy(ctx context.Context, workshopID uint, from, to time.Time) ([]entity.ReportLine, error)
	LinesReceivedBy(ctx context.Context, workshopID uint, from, to time.Time) ([]entity.ReportLine, error)
}

// LeftoverRow 某零件的当前结存数量
type LeftoverRow struct {
	DetailID uint `json:"detail_pk"`
	Amount   int  `json:"amount"`
}

// LeftoverResult 车间截至某日的结存视图
type LeftoverResult struct {
	Leftovers []LeftoverRow `json:"leftovers"`
	Stuck     []Demand      `json:"stuck"`
}

const leftoverCacheTTL = 60 * time.Second

type LeftoverService struct {
	vedomosts VedomostStore
	reports   ReportStore
	usings    InstructionStore
	rdb       *redis.Client
}

func NewLeftoverService(vedomosts VedomostStore, reports ReportStore, usings InstructionStore, rdb *redis.Client) *LeftoverService {
	return &LeftoverService{
		vedomosts: vedomosts,
		reports:   reports,
		usings:    usings,
		rdb:       rdb,
	}
}

// Leftovers 计算车间截至asOf的逐零件结存。
//
// 算法：取asOf当天或之前最近一张盘存清单作为起算基准，加上窗口内收到的
// 转运量，然后用"扣减-分解"不动点循环消化窗口内发出的转运量：每一轮先把
// 发出需求从结存里扣掉能扣的部分，再对剩下的需求做一轮装入说明分解，
// 直到需求清空或只剩无说明可分解的残量（计入stuck）。
// 负结存一律压到0上报（数据不一致的钳制，不是错误）。
func (s *LeftoverService) Leftovers(ctx context.Context, workshopID uint, asOf time.Time) (*LeftoverResult, error) {
	if cached := s.cacheGet(ctx, workshopID, asOf); cached != nil {
		return cached, nil
	}

	vedomost, err := s.vedomosts.LatestBefore(ctx, workshopID, asOf)
	if err != nil {
		return nil, fmt.Errorf("查询盘存清单失败: %w", err)
	}
	if vedomost == nil {
		return nil, ErrNoPriorVedomost
	}

	// 以盘存行为结存种子
	balances := make(map[uint]int)
	for _, line := range vedomost.Lines {
		if line.Amount != 0 {
			balances[line.DetailID] += line.Amount
		}
	}

	// 窗口内收到的转运量记入结存
	received, err := s.reports.LinesReceivedBy(ctx, workshopID, vedomost.CreationDate, asOf)
	if err != nil {
		return nil, fmt.Errorf("查询收货转运行失败: %w", err)
	}
	for _, line := range received {
		balances[line.DetailID] += line.Produced
	}

	// 窗口内发出的转运量构成待扣减需求（逐行，不预先合并）
	sent, err := s.reports.LinesSentBy(ctx, workshopID, vedomost.CreationDate, asOf)
	if err != nil {
		return nil, fmt.Errorf("查询发货转运行失败: %w", err)
	}
	outgoing := make([]Demand, 0, len(sent))
	for _, line := range sent {
		outgoing = append(outgoing, Demand{DetailID: line.DetailID, Amount: line.Produced})
	}

	// 扣减-分解不动点循环
	for len(outgoing) > 0 {
		remaining := outgoing[:0]
		for _, d := range outgoing {
			if have, ok := balances[d.DetailID]; ok && have > 0 {
				take := have
				if d.Amount < take {
					take = d.Amount
				}
				d.Amount -= take
				if have == take {
					delete(balances, d.DetailID)
				} else {
					balances[d.DetailID] = have - take
				}
			}
			if d.Amount > 0 {
				remaining = append(remaining, d)
			}
		}
		if len(remaining) == 0 {
			outgoing = nil
			break
		}

		exploded, changed, err := explodeOnce(ctx, s.usings, remaining)
		if err != nil {
			return nil, err
		}
		if !changed {
			// 只剩原材料残量，无法继续分解
			outgoing = remaining
			break
		}
		outgoing = exploded
	}

	result := &LeftoverResult{
		Leftovers: make([]LeftoverRow, 0, len(balances)),
		Stuck:     outgoing,
	}
	if result.Stuck == nil {
		result.Stuck = []Demand{}
	}
	for detailID, amount := range balances {
		if amount < 0 {
			amount = 0
		}
		result.Leftovers = append(result.Leftovers, LeftoverRow{DetailID: detailID, Amount: amount})
	}
	sort.Slice(result.Leftovers, func(i, j int) bool {
		return result.Leftovers[i].DetailID < result.Leftovers[j].DetailID
	})

	s.cacheSet(ctx, workshopID, asOf, result)
	return result, nil
}

func leftoverCacheKey(workshopID uint, asOf time.Time) string {
	return fmt.Sprintf("mes:leftovers:%d:%s", workshopID, asOf.Format("2006-01-02"))
}

func (s *LeftoverService) cacheGet(ctx context.Context, workshopID uint, asOf time.Time) *LeftoverResult {
	if s.rdb == nil {
		return nil
	}
	payload, err := s.rdb.Get(ctx, leftoverCacheKey(workshopID, asOf)).Bytes()
	if err != nil {
		return nil
	}
	var result LeftoverResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil
	}
	return &result
}

func (s *LeftoverService) cacheSet(ctx context.Context, workshopID uint, asOf time.Time, result *LeftoverResult) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	// 写失败只影响缓存命中率，不影响结果
	s.rdb.Set(ctx, leftoverCacheKey(workshopID, asOf), payload, leftoverCacheTTL)
}

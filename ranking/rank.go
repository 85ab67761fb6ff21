package ranking

import (
	"sort"
	"time"
)

// Scored 是带分数的排序结果，Index 指向输入切片中的位置。
type Scored struct {
	Index int
	Score float64
}

// Rank 按分数降序对候选进行稳定排序，分数相同时保持输入顺序（即数据库返回的时间倒序）。
// 返回值与 items 等长，items 本身不会被修改。
func Rank(items []Signals, viewer Coordinate, now time.Time) []Scored {
	scored := make([]Scored, len(items))
	for i, item := range items {
		scored[i] = Scored{Index: i, Score: Score(item, viewer, now)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

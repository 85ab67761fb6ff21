// Package ranking 计算信息流中帖子的综合相关度分数。
// 分数只用于相对排序，没有绝对含义，取值范围 [0, 1]。
package ranking

import (
	"math"
	"time"
)

const (
	EarthRadiusKm = 6371.0
	// MaxDistanceKm 之外的帖子距离分为 0，但仍会出现在信息流中
	MaxDistanceKm = 500.0
	// RecencyWindow 之外的帖子时效分为 0
	RecencyWindow = 30 * 24 * time.Hour

	DistanceWeight   = 0.5
	EngagementWeight = 0.3
	RecencyWeight    = 0.2
)

// Coordinate 是一个经纬度点（单位：度）
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// IsOrigin 表示调用方没有提供位置。
func (c Coordinate) IsOrigin() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// Signals 是参与打分的单个帖子信号。
// Location 为 nil 时按原点 (0, 0) 处理。
type Signals struct {
	Location  *Coordinate
	Likes     int64
	Comments  int64
	Bookmarks int64
	CreatedAt time.Time
}

// Haversine 返回两点间的大圆距离（公里）。
func Haversine(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// 近似对跖点时舍入误差会让 h 略大于 1
	h = math.Min(1, math.Max(0, h))
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceTerm 线性衰减，500 公里处降为 0。非有限距离按 0 分计。
func DistanceTerm(distanceKm float64) float64 {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return 0
	}
	return clamp01(1 - distanceKm/MaxDistanceKm)
}

// EngagementTerm 对互动总数取对数，避免爆款线性压制其他帖子。
func EngagementTerm(likes, comments, bookmarks int64) float64 {
	total := likes + comments + bookmarks
	if total < 0 {
		total = 0
	}
	return clamp01(math.Log1p(float64(total)) / 10)
}

// RecencyTerm 线性衰减，30 天处降为 0。时钟偏差导致的负年龄按 0 天计。
func RecencyTerm(age time.Duration) float64 {
	if age < 0 {
		age = 0
	}
	return math.Max(0, 1-float64(age)/float64(RecencyWindow))
}

// Score 计算帖子相对于观看者位置的综合分数。
func Score(s Signals, viewer Coordinate, now time.Time) float64 {
	loc := Coordinate{}
	if s.Location != nil {
		loc = *s.Location
	}

	d := DistanceTerm(Haversine(viewer, loc))
	e := EngagementTerm(s.Likes, s.Comments, s.Bookmarks)
	r := RecencyTerm(now.Sub(s.CreatedAt))
	return DistanceWeight*d + EngagementWeight*e + RecencyWeight*r
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Package stats はフレーム時間などの測定値に使う基本統計関数を提供する
package stats

import (
	"math"
	"sort"
)

// Mean は values の算術平均を返す
// 空のスライスにはエラーではなく 0.0 を返す（呼び出し側の分岐を減らすための慣例）
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Clamp は v を [lo, hi] の範囲に制限した値を返す
// lo <= hi を前提とする
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// ClampInt はClampの整数版
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Median は values の中央値を返す
// 空のスライスにはMeanと同じ慣例で 0.0 を返す
// 並べ替えは内部コピーに対して行い、引数のスライスは変更しない
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}

package tools

import "math"

// Round2 保留两位小数，四舍五入（远离零）
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Round(x*100) / 100
}

// Percent 返回 part/total*100，total 为 0 时返回 0，结果保留两位小数
func Percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(part) / float64(total) * 100)
}

// Mean 返回 sum/count，count 为 0 时返回 0，结果保留两位小数
func Mean(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	return Round2(float64(sum) / float64(count))
}

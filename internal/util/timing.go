package util

import "time"

// RemainingSeconds 按开始时间和限时（分钟）计算剩余秒数，不会为负
func RemainingSeconds(startedAt time.Time, durationMinutes int, now time.Time) int {
	elapsed := int(now.Sub(startedAt).Seconds())
	remaining := durationMinutes*60 - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsTimeExpired 限时为 0 表示不限时
func IsTimeExpired(startedAt time.Time, durationMinutes int, now time.Time) bool {
	if durationMinutes <= 0 {
		return false
	}
	return RemainingSeconds(startedAt, durationMinutes, now) <= 0
}

package util

import "math/rand"

// ShuffleInPlace Fisher–Yates 均匀洗牌，每次调用独立随机，不做按学生固定的种子
func ShuffleInPlace[T any](items []T) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

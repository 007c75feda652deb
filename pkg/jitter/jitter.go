// Package jitter добавляет случайность в интервалы повторов, чтобы параллельные
// клиенты не долбили MinIO и Kafka синхронно.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

// Duration возвращает d с джиттером в диапазоне [d, d*(1+factor)].
func Duration(d time.Duration, factor float64) time.Duration {
	return DurationWithRand(d, factor, rand.Float64)
}

// DurationWithRand работает как Duration, но берёт случайные числа из rnd, значения в [0, 1).
func DurationWithRand(d time.Duration, factor float64, rnd func() float64) time.Duration {
	return d + time.Duration(rnd()*factor*float64(d))
}

// ExponentialBackoff удваивает base на каждую попытку (нумерация с нуля), не превышая max, и добавляет джиттер.
func ExponentialBackoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt && backoff < max; i++ {
		backoff *= 2
	}
	if backoff > max {
		backoff = max
	}

	return Duration(backoff, factor)
}

package realtime

import (
	"math/rand"
	"time"
)

const (
	backoffBase = 1000 * time.Millisecond
	backoffCap  = 30000 * time.Millisecond
	backoffJit  = 1000 * time.Millisecond

	// MaxAttempts is the retry budget before the subscriber gives up.
	MaxAttempts = 5
)

// Delay devuelve la espera para el intento n (base 0):
// min(2^n * 1s, 30s) más un jitter en [0, 1s).
func Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	base := backoffBase
	for i := 0; i < attempt; i++ {
		base *= 2
		if base >= backoffCap {
			base = backoffCap
			break
		}
	}

	jitter := time.Duration(rand.Int63n(int64(backoffJit)))
	return base + jitter
}

// Retry lleva la cuenta de reintentos de la suscripción.
type Retry struct {
	attempts int
}

// Next entrega la espera del siguiente reintento, o false si el
// presupuesto de MaxAttempts ya se agotó.
func (r *Retry) Next() (time.Duration, bool) {
	if r.attempts >= MaxAttempts {
		return 0, false
	}

	d := Delay(r.attempts)
	r.attempts++
	return d, true
}

func (r *Retry) Attempts() int {
	return r.attempts
}

// Reset limpia el presupuesto (conexión recuperada).
func (r *Retry) Reset() {
	r.attempts = 0
}

package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelay_Bounds(t *testing.T) {
	// la espera del intento n cae en [2^n * 1s, 2^n * 1s + 1s)
	for n := 0; n < MaxAttempts; n++ {
		base := time.Duration(1<<uint(n)) * time.Second

		for i := 0; i < 50; i++ {
			d := Delay(n)
			assert.GreaterOrEqual(t, d, base, "attempt %d", n)
			assert.Less(t, d, base+time.Second, "attempt %d", n)
		}
	}
}

func TestDelay_CappedAt30s(t *testing.T) {
	for i := 0; i < 50; i++ {
		d := Delay(10)
		assert.GreaterOrEqual(t, d, 30*time.Second)
		assert.Less(t, d, 31*time.Second)
	}
}

func TestDelay_NegativeAttempt(t *testing.T) {
	d := Delay(-3)
	assert.GreaterOrEqual(t, d, time.Second)
	assert.Less(t, d, 2*time.Second)
}

func TestRetry_BudgetIsFiveAttempts(t *testing.T) {
	var retry Retry

	for n := 0; n < MaxAttempts; n++ {
		d, ok := retry.Next()
		require.True(t, ok, "attempt %d should be allowed", n)

		base := time.Duration(1<<uint(n)) * time.Second
		assert.GreaterOrEqual(t, d, base)
		assert.Less(t, d, base+time.Second)
	}

	// sexto intento: presupuesto agotado
	_, ok := retry.Next()
	assert.False(t, ok)
	assert.Equal(t, MaxAttempts, retry.Attempts())
}

func TestRetry_ResetRestoresBudget(t *testing.T) {
	var retry Retry

	for i := 0; i < MaxAttempts; i++ {
		_, ok := retry.Next()
		require.True(t, ok)
	}

	retry.Reset()

	d, ok := retry.Next()
	require.True(t, ok)
	assert.GreaterOrEqual(t, d, time.Second)
	assert.Less(t, d, 2*time.Second)
}

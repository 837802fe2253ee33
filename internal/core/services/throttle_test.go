package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

func TestThrottle_Disabled(t *testing.T) {
	th := newThrottle(domain.RateLimitSettings{})
	assert.Nil(t, th)
	for i := 0; i < 100; i++ {
		assert.True(t, th.Allow("c"))
	}
}

func TestThrottle_BurstPerConversation(t *testing.T) {
	th := newThrottle(domain.RateLimitSettings{PerSecond: 0.001, Burst: 2})

	assert.True(t, th.Allow("a"))
	assert.True(t, th.Allow("a"))
	assert.False(t, th.Allow("a"))

	assert.True(t, th.Allow("b"), "conversations have separate buckets")
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := newKeyedMutex()
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("conv")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Empty(t, km.locks, "idle keys are released")
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	km := newKeyedMutex()

	unlockA := km.Lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("b")
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
}

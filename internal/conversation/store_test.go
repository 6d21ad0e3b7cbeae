package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

func TestStore_GetSetClear(t *testing.T) {
	s := NewStore()

	assert.Equal(t, Idle{}, s.Get(1))

	s.Set(1, DateSelection{Service: domain.ServiceBeard})
	assert.Equal(t, DateSelection{Service: domain.ServiceBeard}, s.Get(1))
	assert.Equal(t, Idle{}, s.Get(2))
	assert.Equal(t, 1, s.Len())

	s.Set(1, Idle{})
	assert.Zero(t, s.Len())

	s.Set(2, ServiceSelection{})
	s.Clear(2)
	assert.Equal(t, Idle{}, s.Get(2))
	assert.Zero(t, s.Len())
}

func TestStore_LockSerializesOneCustomer(t *testing.T) {
	s := NewStore()

	unlock := s.Lock(1)

	acquired := make(chan struct{})
	go func() {
		release := s.Lock(1)
		close(acquired)
		release()
	}()

	// Другой клиент не ждет
	s.Lock(2)()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while the first one is held")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock was not acquired after release")
	}

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.locks) == 0
	}, time.Second, 5*time.Millisecond)
}

package services_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/factory-planner-go/internal/application/project/services"
)

func TestCatalogGuard_ReadersShareWritersExclude(t *testing.T) {
	// Arrange
	guard := services.NewCatalogGuard()
	var readers int32
	var maxReaders int32
	var wg sync.WaitGroup

	// Act
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := guard.RLock("p-1")
			defer release()
			n := atomic.AddInt32(&readers, 1)
			for {
				m := atomic.LoadInt32(&maxReaders)
				if n <= m || atomic.CompareAndSwapInt32(&maxReaders, m, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&readers, -1)
		}()
	}
	wg.Wait()

	release := guard.Lock("p-1")
	acquired := make(chan struct{})
	go func() {
		r := guard.RLock("p-1")
		close(acquired)
		r()
	}()

	// Assert
	assert.Greater(t, atomic.LoadInt32(&maxReaders), int32(1))
	select {
	case <-acquired:
		t.Fatal("reader acquired the lock while a writer held it")
	case <-time.After(30 * time.Millisecond):
	}
	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("reader never acquired the lock")
	}
}

func TestCatalogGuard_ProjectsAreIndependent(t *testing.T) {
	guard := services.NewCatalogGuard()
	release := guard.Lock("p-1")
	defer release()

	done := make(chan struct{})
	go func() {
		r := guard.Lock("p-2")
		r()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on p-2 blocked behind p-1")
	}
}

package common

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueHandlerChunks(t *testing.T) {
	var mu sync.Mutex
	batches := make([][]int, 0)
	q := NewQueueHandlerWithInterval(func(items []int) {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, append([]int(nil), items...))
	}, 2, time.Hour)

	q.Add(1, 2, 3)
	q.Add(4, 5)
	q.Close()

	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, batches)
	assert.Equal(t, 0, q.Len())
}

func TestQueueHandlerInterval(t *testing.T) {
	processed := make(chan []string, 1)
	q := NewQueueHandlerWithInterval(func(items []string) {
		processed <- items
	}, 10, 10*time.Millisecond)
	defer q.Close()

	q.Add("a")
	select {
	case items := <-processed:
		assert.Equal(t, []string{"a"}, items)
	case <-time.After(time.Second):
		t.Fatal("queue was not processed")
	}
}

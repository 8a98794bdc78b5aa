package queue

import (
	"sync"
	"testing"

	"patchdisplay/internal/protocol"

	"github.com/stretchr/testify/assert"
)

func TestDrainEmpty(t *testing.T) {
	q := New()
	assert.Nil(t, q.Drain())
}

func TestPushThenDrainPreservesOrder(t *testing.T) {
	q := New()
	for i := 0; i < 5; i++ {
		q.Push(protocol.Command{Kind: protocol.KindBar, Row: i})
	}
	drained := q.Drain()
	assert.Len(t, drained, 5)
	for i, cmd := range drained {
		assert.Equal(t, i, cmd.Row)
	}
	assert.Empty(t, q.Drain(), "second drain should be empty")
}

func TestConcurrentPush(t *testing.T) {
	q := New()
	var wg sync.WaitGroup
	const producers, perProducer = 8, 100
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(protocol.Command{Kind: protocol.KindArc})
			}
		}()
	}
	wg.Wait()
	assert.Len(t, q.Drain(), producers*perProducer)
}

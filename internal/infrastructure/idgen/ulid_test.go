package idgen

import (
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULIDGenerator_UniqueAndOrdered(t *testing.T) {
	g := NewULIDGenerator()

	prev := g.Generate()
	for i := 0; i < 1000; i++ {
		next := g.Generate()
		require.Less(t, prev, next)
		prev = next
	}

	_, err := ulid.Parse(prev)
	assert.NoError(t, err)
}

func TestULIDGenerator_Concurrent(t *testing.T) {
	g := NewULIDGenerator()

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{})
		wg   sync.WaitGroup
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				id := g.Generate()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Len(t, seen, 1600)
}

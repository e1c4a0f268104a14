package middleware

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserLocks_Get(t *testing.T) {
	locks := newUserLocks()

	a := locks.get(1)
	b := locks.get(1)
	c := locks.get(2)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestUserLocks_ConcurrentGet(t *testing.T) {
	locks := newUserLocks()

	var wg sync.WaitGroup
	results := make([]*sync.Mutex, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = locks.get(7)
		}(i)
	}
	wg.Wait()

	for _, m := range results {
		assert.Same(t, results[0], m)
	}
}

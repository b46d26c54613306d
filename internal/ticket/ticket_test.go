package ticket

import (
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ticketPattern = regexp.MustCompile(`^(OC|AT|RT|ST)-\d+-[A-Za-z0-9]{32}$`)

func TestNext_Format(t *testing.T) {
	for _, family := range []string{
		FamilyAuthorizationCode,
		FamilyAccessToken,
		FamilyRefreshToken,
		FamilyServiceTicket,
	} {
		g := NewGenerator(family)
		id, err := g.Next()
		require.NoError(t, err)
		assert.Regexp(t, ticketPattern, id)
		assert.Equal(t, family, id[:2])
	}
}

func TestNext_SequenceIncreases(t *testing.T) {
	g := NewGenerator(FamilyAuthorizationCode)

	first, err := g.Next()
	require.NoError(t, err)
	second, err := g.Next()
	require.NoError(t, err)

	assert.Regexp(t, `^OC-1-`, first)
	assert.Regexp(t, `^OC-2-`, second)
}

func TestNext_Unique(t *testing.T) {
	g := NewGenerator(FamilyAccessToken)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := g.Next()
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate identifier %s", id)
		seen[id] = true
	}
}

func TestNext_ConcurrentSequenceHasNoGapsOrDuplicates(t *testing.T) {
	g := NewGenerator(FamilyAccessToken)

	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	ids := make(chan string, workers*perWorker)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id, err := g.Next()
				if err == nil {
					ids <- id
				}
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	count := 0
	for id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
		count++
	}
	assert.Equal(t, workers*perWorker, count)
}

func TestRandomAlphanumeric_AlphabetOnly(t *testing.T) {
	s, err := randomAlphanumeric(256)
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Za-z0-9]{256}$`, s)
}

package pack

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChangelogEntry(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	require := require.New(t)

	entry, err := ParseChangelogEntry("john doe:fixed the build:2024-01-15")
	require.NoError(err)
	assert.Equal("john doe", entry.Author)
	assert.Equal("fixed the build", entry.Text)
	assert.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC).Unix(), entry.Time)

	for _, raw := range []string{
		"no separators",
		"author:text only",
		"author:text:not-a-date",
	} {
		_, err := ParseChangelogEntry(raw)

		var parseErr *ParseError
		assert.ErrorAs(err, &parseErr, "input %q", raw)
	}
}

func TestAddChangelogTags(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	require := require.New(t)

	entries, err := ParseChangelog([]string{
		"alice:initial release:2023-05-01",
		"bob:second release:2024-02-20",
	})
	require.NoError(err)

	// Entries are emitted newest-first no matter the declared order.
	header := rpmTagSetType{}
	addChangelogTags(&header, entries)
	require.Len(header, 3)

	assert.Equal(tagChangelogTime, header[0].ID)
	assert.Equal([]string{"bob", "alice"}, header[1].Value)
	assert.Equal([]string{"second release", "initial release"}, header[2].Value)

	times := header[0].Value.([]int32)
	require.Len(times, 2)
	assert.Greater(times[0], times[1])

	// An empty changelog emits nothing.
	empty := rpmTagSetType{}
	addChangelogTags(&empty, nil)
	assert.Len(empty, 0)
}

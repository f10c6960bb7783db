package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCpioEntry(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	entries := []FileEntry{
		{
			Target: "/usr/bin/a",
			Mode:   0o100755,
			Mtime:  1700000000,
			Body:   []byte("AAA"),
		},
	}

	archive, err := packCpio(entries)
	require.NoError(t, err)

	// 110-byte metadata record, name with NULL, padding to 4, content,
	// padding to 4.
	raw := archive.Bytes()
	assert.Equal(
		"07070100000001000081ed00000000000000000000000165"+
			"53f10000000003000000000000000000000000000000000000000c"+
			"00000000",
		string(raw[:110]),
	)
	assert.Equal("./usr/bin/a", string(raw[110:121]))
	assert.Equal(byte(0), raw[121])
	// Two padding bytes align the content on a 4-byte boundary.
	assert.Equal([]byte{0, 0, 'A', 'A', 'A', 0}, raw[122:128])

	// The trailer entry closes the archive.
	assert.Contains(string(raw[128:]), cpioTrailerName)
	assert.Equal(0, len(raw)%cpioAlignment)
}

func TestPackCpioInodes(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	archive, err := packCpio([]FileEntry{
		{Target: "/a", Mode: 0o100644},
		{Target: "/b", Mode: 0o100644},
	})
	require.NoError(t, err)

	raw := archive.Bytes()
	// Inodes are assigned sequentially starting from 1.
	assert.Equal("00000001", string(raw[6:14]))

	secondEntry := raw[116:]
	assert.Equal("00000002", string(secondEntry[6:14]))
}

func TestOrderEntries(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	require := require.New(t)

	// A directory declared after its content has to move in front of it.
	ordered, err := orderEntries([]FileEntry{
		{Target: "/usr/share/doc/readme", Mode: 0o100644},
		{Target: "/usr/bin/a", Mode: 0o100755},
		{Target: "/usr/share/doc", Mode: modeDir | 0o755},
	})
	require.NoError(err)

	targets := make([]string, 0, len(ordered))
	for _, entry := range ordered {
		targets = append(targets, entry.Target)
	}
	assert.Equal([]string{"/usr/share/doc", "/usr/share/doc/readme", "/usr/bin/a"},
		targets)

	// Entries without nesting keep the declared order.
	ordered, err = orderEntries([]FileEntry{
		{Target: "/z", Mode: 0o100644},
		{Target: "/a", Mode: 0o100644},
	})
	require.NoError(err)
	assert.Equal("/z", ordered[0].Target)
	assert.Equal("/a", ordered[1].Target)
}

func TestOrderEntriesErrors(t *testing.T) {
	t.Parallel()

	var pathErr *PathError

	_, err := orderEntries([]FileEntry{
		{Target: "usr/bin/a", Mode: 0o100755},
	})
	assert.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "usr/bin/a", pathErr.Path)

	_, err = orderEntries([]FileEntry{
		{Target: "/usr/bin/a", Mode: 0o100755},
		{Target: "/usr/bin/a", Mode: 0o100644},
	})
	assert.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "/usr/bin/a", pathErr.Path)
}

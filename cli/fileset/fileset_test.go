package fileset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpmbuilder/rpmbuilder/cli/pack"
)

func TestParseMapping(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	require := require.New(t)

	mapping, err := ParseMapping("target/myapp:/usr/bin/myapp")
	require.NoError(err)
	assert.Equal("target/myapp", mapping.Source)
	assert.Equal("/usr/bin/myapp", mapping.Target)

	// The target is cleaned.
	mapping, err = ParseMapping("a:/usr//bin/./myapp")
	require.NoError(err)
	assert.Equal("/usr/bin/myapp", mapping.Target)

	for _, raw := range []string{
		"",
		"no-separator",
		":/usr/bin/myapp",
		"source:",
		"source:relative/target",
	} {
		_, err := ParseMapping(raw)
		assert.Error(err, "input %q", raw)
	}
}

func TestCollectFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	require := require.New(t)

	tmpDir := t.TempDir()
	srcPath := filepath.Join(tmpDir, "myapp")
	require.NoError(os.WriteFile(srcPath, []byte("content"), 0o644))

	mapping := Mapping{Source: srcPath, Target: "/usr/bin/myapp"}

	entry, err := CollectFile(mapping, pack.RoleRegular)
	require.NoError(err)
	assert.Equal("/usr/bin/myapp", entry.Target)
	assert.Equal([]byte("content"), entry.Body)
	assert.Equal(uint32(0o100644), entry.Mode)
	assert.False(entry.IsDir())

	// The executable role forces mode 0755.
	entry, err = CollectFile(mapping, pack.RoleExecutable)
	require.NoError(err)
	assert.Equal(uint32(0o100755), entry.Mode)

	// A missing source fails.
	_, err = CollectFile(Mapping{
		Source: filepath.Join(tmpDir, "missing"),
		Target: "/usr/bin/missing",
	}, pack.RoleRegular)
	assert.Error(err)

	// A directory source fails.
	_, err = CollectFile(Mapping{Source: tmpDir, Target: "/usr/bin/dir"},
		pack.RoleRegular)
	assert.Error(err)
}

func TestCollectDir(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	require := require.New(t)

	tmpDir := t.TempDir()
	require.NoError(os.MkdirAll(filepath.Join(tmpDir, "sub"), 0o755))
	require.NoError(os.WriteFile(filepath.Join(tmpDir, "top.txt"),
		[]byte("top"), 0o644))
	require.NoError(os.WriteFile(filepath.Join(tmpDir, "sub", "nested.txt"),
		[]byte("nested"), 0o644))

	entries, err := CollectDir(Mapping{Source: tmpDir, Target: "/usr/share/demo"})
	require.NoError(err)
	require.Len(entries, 4)

	byTarget := make(map[string]pack.FileEntry, len(entries))
	for _, entry := range entries {
		byTarget[entry.Target] = entry
	}

	rootEntry := byTarget["/usr/share/demo"]
	subEntry := byTarget["/usr/share/demo/sub"]
	assert.True(rootEntry.IsDir())
	assert.True(subEntry.IsDir())
	assert.Equal([]byte("top"), byTarget["/usr/share/demo/top.txt"].Body)
	assert.Equal([]byte("nested"), byTarget["/usr/share/demo/sub/nested.txt"].Body)

	// A plain file source fails.
	_, err = CollectDir(Mapping{
		Source: filepath.Join(tmpDir, "top.txt"),
		Target: "/usr/share/demo",
	})
	assert.Error(err)
}

func TestResolveOutPath(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	tmpDir := t.TempDir()
	filename := "demo-1.0.0-1.x86_64.rpm"

	assert.Equal(filename, ResolveOutPath("", filename))
	assert.Equal(filepath.Join(tmpDir, filename), ResolveOutPath(tmpDir, filename))
	assert.Equal("custom.rpm", ResolveOutPath("custom", filename))
	assert.Equal("custom.rpm", ResolveOutPath("custom.rpm", filename))
}

func TestWriteArtifact(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	require := require.New(t)

	tmpDir := t.TempDir()
	outPath := filepath.Join(tmpDir, "demo-1.0.0-1.x86_64.rpm")

	artifact := &pack.Artifact{
		Data:     []byte("package image"),
		Filename: "demo-1.0.0-1.x86_64.rpm",
	}

	require.NoError(WriteArtifact(artifact, outPath))

	written, err := os.ReadFile(outPath)
	require.NoError(err)
	assert.Equal(artifact.Data, written)

	// No temporary files are left behind.
	dirEntries, err := os.ReadDir(tmpDir)
	require.NoError(err)
	assert.Len(dirEntries, 1)
}

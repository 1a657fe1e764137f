package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUnder(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		rel     string
		want    string
		wantErr bool
	}{
		{name: "simple file", rel: "surge.json", want: filepath.Join(root, "surge.json")},
		{name: "nested slash path", rel: ".github/workflows/deploy-surge.yml", want: filepath.Join(root, ".github", "workflows", "deploy-surge.yml")},
		{name: "inner dot-dot stays inside", rel: "scripts/../CNAME", want: filepath.Join(root, "CNAME")},
		{name: "dotdot-prefixed name is a file", rel: "..hidden", want: filepath.Join(root, "..hidden")},
		{name: "escape", rel: "../outside", wantErr: true},
		{name: "bare parent", rel: "..", wantErr: true},
		{name: "absolute", rel: "/etc/passwd", wantErr: true},
		{name: "empty", rel: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveUnder(root, tt.rel)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteFileAtomic_CreatesParentsAndAppliesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scripts", "deploy.sh")

	require.NoError(t, WriteFileAtomic(path, []byte("#!/bin/bash\n"), 0o755))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/bash\n", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	}
}

func TestWriteFileAtomic_ReplacesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CNAME")

	require.NoError(t, WriteFileAtomic(path, []byte("old.surge.sh"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("new.surge.sh"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new.surge.sh", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "CNAME", entries[0].Name())
}

func TestWriteFileAtomic_FailsWhenParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "scripts")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := WriteFileAtomic(filepath.Join(blocker, "deploy.sh"), []byte("x"), 0o755)
	require.Error(t, err)
}

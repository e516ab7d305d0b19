package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/etc/devkit.yaml", "/etc/devkit.yaml"},
		{"relative/x.toml", "relative/x.toml"},
		{"~", home},
		{"~/cfg/devkit.yaml", filepath.Join(home, "cfg/devkit.yaml")},
	}
	for _, tt := range tests {
		got, err := ExpandTilde(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ExpandTilde(%q)", tt.in)
	}
}

func TestConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	t.Chdir(work)

	t.Run("nothing found", func(t *testing.T) {
		path, err := ConfigPath("")
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("global", func(t *testing.T) {
		global := filepath.Join(home, ".devkit", "config.toml")
		require.NoError(t, os.MkdirAll(filepath.Dir(global), 0750))
		require.NoError(t, os.WriteFile(global, []byte("indent = 4\n"), 0600))

		path, err := ConfigPath("")
		require.NoError(t, err)
		assert.Equal(t, global, path)
	})

	t.Run("local wins over global", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(work, "devkit.yaml"), []byte("indent: 2\n"), 0600))

		path, err := ConfigPath("")
		require.NoError(t, err)
		assert.Equal(t, "devkit.yaml", filepath.Base(path))
		assert.True(t, filepath.IsAbs(path))
	})

	t.Run("explicit", func(t *testing.T) {
		explicit := filepath.Join(work, "other.toml")
		require.NoError(t, os.WriteFile(explicit, []byte(""), 0600))

		path, err := ConfigPath(explicit)
		require.NoError(t, err)
		assert.Equal(t, explicit, path)

		_, err = ConfigPath(filepath.Join(work, "missing.yaml"))
		assert.Error(t, err)
	})
}

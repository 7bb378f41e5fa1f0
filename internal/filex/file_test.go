package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStat_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.pdf")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	name, size, err := Stat(path)
	require.NoError(t, err)
	require.Equal(t, "deck.pdf", name)
	require.Equal(t, int64(5), size)
}

func TestStat_Directory(t *testing.T) {
	dir := t.TempDir()
	_, _, err := Stat(dir)
	require.Error(t, err)
}

func TestStat_Missing(t *testing.T) {
	_, _, err := Stat(filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
}

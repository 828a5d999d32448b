package storage

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	perrors "github.com/zhubert/snappy/internal/errors"
)

// setupTestStore opens an in-memory Badger store for a single test.
func setupTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func Test_Set_And_Get(t *testing.T) {
	req := require.New(t)
	s := setupTestStore(t)

	req.NoError(s.Set("k", []byte("v1")))
	got, err := s.Get("k")
	req.NoError(err)
	req.Equal([]byte("v1"), got)

	// Overwrite
	req.NoError(s.Set("k", []byte("v2")))
	got, err = s.Get("k")
	req.NoError(err)
	req.Equal("v2", string(got))
}

func Test_Get_Missing_Key_Is_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Get("nope")
	require.True(t, perrors.Is(err, perrors.KindNotFound), "got %v", err)
}

func Test_Get_Returns_A_Copy(t *testing.T) {
	req := require.New(t)
	s := setupTestStore(t)
	req.NoError(s.Set("k", []byte("abc")))

	got, err := s.Get("k")
	req.NoError(err)
	got[0] = 'z'

	again, err := s.Get("k")
	req.NoError(err)
	req.Equal("abc", string(again))
}

func Test_Delete(t *testing.T) {
	req := require.New(t)
	s := setupTestStore(t)

	req.NoError(s.Set("k", []byte("v")))
	req.NoError(s.Delete("k"))
	_, err := s.Get("k")
	req.True(perrors.Is(err, perrors.KindNotFound), "deleted key should be NotFound, got %v", err)

	// Deleting a missing key is not an error
	req.NoError(s.Delete("never-set"))
}

func Test_Open_On_Disk_Persists(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	s, err := Open(dir)
	req.NoError(err)
	req.NoError(s.Set("persist", []byte("yes")))
	req.NoError(s.Close())

	reopened, err := Open(dir)
	req.NoError(err)
	defer reopened.Close()

	got, err := reopened.Get("persist")
	req.NoError(err)
	req.Equal("yes", string(got))
}

func Test_Open_Locked_Dir_Is_Storage_Error(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	s, err := Open(dir)
	req.NoError(err)
	defer s.Close()

	// Badger holds a directory lock while open
	_, err = Open(dir)
	req.Error(err)
	req.Equal(perrors.KindStorage, perrors.GetKind(err))
}

func Test_Badger_Logs_Go_To_Component_Logger(t *testing.T) {
	req := require.New(t)

	_, ok := badgerOptions(t.TempDir()).Logger.(badgerLogger)
	req.True(ok, "badger should log through the storage logger")

	var buf bytes.Buffer
	l := badgerLogger{log: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	l.Warningf("value log %d truncated\n", 3)
	req.Contains(buf.String(), "level=WARN")
	req.Contains(buf.String(), `msg="value log 3 truncated"`)

	buf.Reset()
	l.Infof("compaction done")
	req.Contains(buf.String(), "level=DEBUG")
	req.Contains(buf.String(), "msg=\"compaction done\"")

	buf.Reset()
	l.Errorf("disk full")
	req.Contains(buf.String(), "level=ERROR")
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockLogLevel int8 = 0

func TestNewWritesJSONWithBuildFields(t *testing.T) {
	var buf bytes.Buffer
	zl, lgr := New(mockLogLevel, &buf)
	lgr.Info("catalog loaded", "records", 7)
	require.NoError(t, zl.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "catalog loaded", entry[MessageKey])
	assert.EqualValues(t, 7, entry["records"])
	assert.Contains(t, entry, TimeStampKey)
	assert.Contains(t, entry, VersionKey)
	assert.Contains(t, entry, CommitKey)
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	zl, lgr := New(mockLogLevel, &buf)
	lgr.V(1).Info("transition", "event", "input_changed")
	require.NoError(t, zl.Sync())
	assert.Empty(t, buf.String(), "V(1) must be suppressed at info level")

	buf.Reset()
	zl, lgr = New(-1, &buf)
	lgr.V(1).Info("transition", "event", "input_changed")
	require.NoError(t, zl.Sync())
	assert.Contains(t, buf.String(), "input_changed")
}

func TestGetReturnsSameInstance(t *testing.T) {
	l1 := Get(mockLogLevel)
	l2 := Get(-1)
	require.NotNil(t, l1)
	assert.Same(t, l1, l2)
}

func TestGetReturnsNoopWhenGlobalMissing(t *testing.T) {
	Get(mockLogLevel)
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	assert.Same(t, &defaultNoopLogger, Get(mockLogLevel))
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	lgr := Get(mockLogLevel)

	withLgr := WithLogger(ctx, lgr)
	assert.Same(t, lgr, FromContext(withLgr))
	assert.Equal(t, withLgr, WithLogger(withLgr, lgr), "same logger must not re-wrap the context")

	other := logr.Discard()
	replaced := WithLogger(withLgr, &other)
	assert.Same(t, &other, FromContext(replaced))
}

func TestFromContextFallbacks(t *testing.T) {
	Get(mockLogLevel)
	assert.Same(t, globalLogrLogger, FromContext(context.Background()))

	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
}

func TestSyncWithoutGlobal(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()
	assert.NotPanics(t, Sync)
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(&os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EINVAL}))
	assert.True(t, isIgnorableSyncError(errors.New("sync: The handle is invalid.")))
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	lgr := Get(mockLogLevel)
	nl := WithValues(lgr, SubCommandKey, "search")
	require.NotNil(t, nl)
	assert.NotSame(t, lgr, nl)
}

func TestGetNoopLogger(t *testing.T) {
	assert.Same(t, &defaultNoopLogger, GetNoopLogger())
	assert.NotPanics(t, func() { GetNoopLogger().Info("ignored") })
}

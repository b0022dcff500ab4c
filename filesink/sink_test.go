package filesink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

type record struct {
	Radio  string `json:"radio"`
	Points int    `json:"points"`
}

type testSink struct {
	*Sink
	fs    afero.Fs
	clock *clockwork.FakeClock
	done  chan error
}

func newTestSink(tb testing.TB, opts ...Opt) *testSink {
	tb.Helper()
	fs := afero.NewMemMapFs()
	clock := clockwork.NewFakeClockAt(time.UnixMilli(1_700_000_000_000))
	opts = append([]Opt{WithLogger(zaptest.NewLogger(tb)), WithClock(clock)}, opts...)
	ts := &testSink{
		Sink:  New(fs, "/out", "rewards", opts...),
		fs:    fs,
		clock: clock,
		done:  make(chan error, 1),
	}
	go func() { ts.done <- ts.Run(context.Background()) }()
	tb.Cleanup(func() {
		ts.Close()
		require.NoError(tb, <-ts.done)
	})
	return ts
}

func waitAck(tb testing.TB, ack <-chan error) error {
	tb.Helper()
	select {
	case err := <-ack:
		return err
	case <-time.After(5 * time.Second):
		require.FailNow(tb, "write was not acknowledged")
	}
	return nil
}

func TestSinkWritesFile(t *testing.T) {
	s := newTestSink(t)

	ack, err := s.Write(context.Background(), record{"a", 10}, record{"b", 20})
	require.NoError(t, err)
	require.NoError(t, waitAck(t, ack))

	path := "/out/" + FileName("rewards", s.clock.Now())
	require.Equal(t, "/out/rewards.1700000000000.gz", path)
	records, err := ReadRecords[record](s.fs, path)
	require.NoError(t, err)
	require.Equal(t, []record{{"a", 10}, {"b", 20}}, records)

	entries, err := afero.ReadDir(s.fs, "/out")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file left behind")
}

func TestSinkUniqueNames(t *testing.T) {
	s := newTestSink(t)

	for i := 0; i < 3; i++ {
		ack, err := s.Write(context.Background(), record{"a", i})
		require.NoError(t, err)
		require.NoError(t, waitAck(t, ack))
	}
	entries, err := afero.ReadDir(s.fs, "/out")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, entry := range entries {
		prefix, ts, err := ParseFileName(entry.Name())
		require.NoError(t, err)
		require.Equal(t, "rewards", prefix)
		require.Equal(t, s.clock.Now().Add(time.Duration(i)*time.Millisecond).UnixMilli(), ts.UnixMilli())

		records, err := ReadRecords[record](s.fs, "/out/"+entry.Name())
		require.NoError(t, err)
		require.Equal(t, []record{{"a", i}}, records)
	}
}

func TestSinkEmptyWrite(t *testing.T) {
	s := newTestSink(t)
	ack, err := s.Write(context.Background())
	require.NoError(t, err)
	require.NoError(t, waitAck(t, ack))

	records, err := ReadRecords[record](s.fs, "/out/"+FileName("rewards", s.clock.Now()))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestSinkEncodeError(t *testing.T) {
	s := newTestSink(t)
	ack, err := s.Write(context.Background(), record{"a", 1}, make(chan int))
	require.NoError(t, err)
	require.Error(t, waitAck(t, ack))

	entries, err := afero.ReadDir(s.fs, "/out")
	require.NoError(t, err)
	require.Empty(t, entries)

	ack, err = s.Write(context.Background(), record{"a", 1})
	require.NoError(t, err)
	require.NoError(t, waitAck(t, ack))
}

func TestSinkUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	uploader := NewMockUploader(ctrl)
	s := newTestSink(t, WithUploader(uploader))

	name := FileName("rewards", s.clock.Now())
	uploader.EXPECT().Upload(gomock.Any(), s.fs, "/out/"+name, name).Return(nil)
	ack, err := s.Write(context.Background(), record{"a", 1})
	require.NoError(t, err)
	require.NoError(t, waitAck(t, ack))

	failure := errors.New("bucket unavailable")
	uploader.EXPECT().Upload(gomock.Any(), s.fs, gomock.Any(), gomock.Any()).Return(failure)
	ack, err = s.Write(context.Background(), record{"b", 2})
	require.NoError(t, err)
	require.ErrorIs(t, waitAck(t, ack), failure)
}

func TestSinkDrainsOnClose(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, "/out", "valid_shares", WithQueueSize(4))

	var acks []<-chan error
	for i := 0; i < 4; i++ {
		ack, err := s.Write(context.Background(), record{"a", i})
		require.NoError(t, err)
		acks = append(acks, ack)
	}
	s.Close()
	_, err := s.Write(context.Background(), record{"late", 0})
	require.ErrorIs(t, err, ErrClosed)

	require.NoError(t, s.Run(context.Background()))
	for _, ack := range acks {
		require.NoError(t, waitAck(t, ack))
	}
	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	require.Len(t, entries, 4)
}

func TestSinkWriteCanceled(t *testing.T) {
	s := New(afero.NewMemMapFs(), "/out", "invalid_shares", WithQueueSize(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Write(ctx, record{"a", 1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseFileName(t *testing.T) {
	prefix, ts, err := ParseFileName("/data/valid_shares.1700000000123.gz")
	require.NoError(t, err)
	require.Equal(t, "valid_shares", prefix)
	require.Equal(t, int64(1700000000123), ts.UnixMilli())

	for _, name := range []string{"rewards.gz", "rewards.abc.gz", "rewards.123.json", ".123.gz"} {
		_, _, err := ParseFileName(name)
		require.Error(t, err, name)
	}
}

func TestParseGsURI(t *testing.T) {
	bucket, path, err := ParseGsURI("gs://rewards-bucket/mobile/verifier")
	require.NoError(t, err)
	require.Equal(t, "rewards-bucket", bucket)
	require.Equal(t, "mobile/verifier", path)

	bucket, path, err = ParseGsURI("gs://rewards-bucket")
	require.NoError(t, err)
	require.Equal(t, "rewards-bucket", bucket)
	require.Empty(t, path)

	_, _, err = ParseGsURI("s3://rewards-bucket")
	require.Error(t, err)
	_, _, err = ParseGsURI("gs:///path")
	require.Error(t, err)
}

// Package filesink persists output records as gzip compressed json lines files.
//
// Every Write becomes exactly one file named <prefix>.<unix millis>.gz. Records are
// acknowledged only after the file is synced to disk and, if configured, uploaded.
package filesink

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const fileExt = ".gz"

var ErrClosed = errors.New("file sink is closed")

type message struct {
	records []any
	ack     chan error
}

type Opt func(*Sink)

func WithLogger(logger *zap.Logger) Opt {
	return func(s *Sink) {
		s.logger = logger
	}
}

func WithClock(clock clockwork.Clock) Opt {
	return func(s *Sink) {
		s.clock = clock
	}
}

// WithUploader uploads every file after it was persisted locally.
func WithUploader(uploader Uploader) Opt {
	return func(s *Sink) {
		s.uploader = uploader
	}
}

// WithQueueSize sets the number of messages that can be written without blocking.
func WithQueueSize(size int) Opt {
	return func(s *Sink) {
		s.queue = size
	}
}

// Sink writes messages serially.
type Sink struct {
	logger   *zap.Logger
	clock    clockwork.Clock
	fs       afero.Fs
	dir      string
	prefix   string
	uploader Uploader
	queue    int

	mu     sync.RWMutex
	closed bool
	msgs   chan message
	last   time.Time
}

func New(fs afero.Fs, dir, prefix string, opts ...Opt) *Sink {
	s := &Sink{
		logger: zap.NewNop(),
		clock:  clockwork.NewRealClock(),
		fs:     fs,
		dir:    dir,
		prefix: prefix,
		queue:  16,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.msgs = make(chan message, s.queue)
	s.logger = s.logger.With(zap.String("sink", prefix))
	return s
}

func (s *Sink) Prefix() string {
	return s.prefix
}

// Write queues records to be persisted in a single file.
// The returned channel receives the result once the file is durable.
func (s *Sink) Write(ctx context.Context, records ...any) (<-chan error, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	msg := message{records: records, ack: make(chan error, 1)}
	select {
	case s.msgs <- msg:
		return msg.ack, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting writes. Run returns after messages queued before Close are persisted.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.msgs)
}

// Run persists messages until the sink is closed.
// Failures are reported on the message acknowledgement and do not stop the sink.
// ctx bounds uploads only.
func (s *Sink) Run(ctx context.Context) error {
	for msg := range s.msgs {
		start := time.Now()
		path, err := s.persist(ctx, msg.records)
		if err != nil {
			s.logger.Error("failed to persist records",
				zap.Int("records", len(msg.records)),
				zap.Error(err),
			)
			writeErrors.WithLabelValues(s.prefix).Inc()
		} else {
			s.logger.Debug("persisted records",
				zap.String("path", path),
				zap.Int("records", len(msg.records)),
				zap.Duration("duration", time.Since(start)),
			)
			writtenRecords.WithLabelValues(s.prefix).Add(float64(len(msg.records)))
		}
		msg.ack <- err
	}
	s.logger.Debug("sink stopped")
	return nil
}

// next returns a timestamp for a file name that is strictly after the previous one.
func (s *Sink) next() time.Time {
	now := s.clock.Now().Truncate(time.Millisecond)
	if !now.After(s.last) {
		now = s.last.Add(time.Millisecond)
	}
	s.last = now
	return now
}

func (s *Sink) persist(ctx context.Context, records []any) (string, error) {
	name := FileName(s.prefix, s.next())
	path := filepath.Join(s.dir, name)
	rf, err := newRecoveryFile(s.fs, path)
	if err != nil {
		return "", err
	}
	for _, record := range records {
		if err := rf.writeRecord(record); err != nil {
			rf.abort(s.fs)
			return "", fmt.Errorf("%s: %w", name, err)
		}
	}
	if err := rf.save(s.fs); err != nil {
		s.fs.Remove(rf.file.Name())
		return "", err
	}
	if s.uploader != nil {
		if err := s.uploader.Upload(ctx, s.fs, path, name); err != nil {
			return path, fmt.Errorf("upload %s: %w", name, err)
		}
	}
	return path, nil
}

// FileName returns the name of a file written by a sink with the prefix at the given time.
func FileName(prefix string, ts time.Time) string {
	return prefix + "." + strconv.FormatInt(ts.UnixMilli(), 10) + fileExt
}

// ParseFileName returns the prefix and the timestamp encoded in the file name.
func ParseFileName(name string) (string, time.Time, error) {
	base, ok := strings.CutSuffix(filepath.Base(name), fileExt)
	if !ok {
		return "", time.Time{}, fmt.Errorf("file %s doesn't have %s extension", name, fileExt)
	}
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return "", time.Time{}, fmt.Errorf("file %s doesn't have a timestamp", name)
	}
	millis, err := strconv.ParseInt(base[i+1:], 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parse timestamp of %s: %w", name, err)
	}
	return base[:i], time.UnixMilli(millis).UTC(), nil
}

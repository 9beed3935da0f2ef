package logex

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/atomic"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ZerologAdapter is the built-in DispatchAdapter. It renders records through
// zerolog onto a rolling file sink and an optional console sink, decoupled
// from the caller by a bounded queue and a single worker goroutine.
//
// The zero value is ready to use; InitializeSink starts the worker and
// Teardown drains and stops it. Writes issued outside that window are
// silently dropped.
type ZerologAdapter struct {
	// WorkDir anchors relative log file paths. Empty means the current
	// working directory.
	WorkDir string

	// ConsoleOut is the console sink destination. Nil means os.Stderr.
	ConsoleOut io.Writer

	// QueueSize caps buffered records before writers block. Zero or
	// negative selects the default.
	QueueSize int

	// ShutdownTimeoutMS bounds how long Teardown and Flush wait for the
	// worker to drain. Zero or negative selects the default.
	ShutdownTimeoutMS int

	mu            sync.RWMutex
	isInitialized atomic.Bool
	activeWrites  atomic.Int32
	workerWg      sync.WaitGroup
	queue         chan dispatchEntry
	fileWriter    *lumberjack.Logger
	sinks         []io.Closer
}

// dispatchEntry is one queued record. A non-nil barrier marks a flush
// request; the worker closes it once every earlier entry has been written.
type dispatchEntry struct {
	severity Severity
	message  string
	barrier  chan struct{}
}

// InitializeSink validates settings, opens the sinks and starts the worker.
// An already initialized adapter is torn down first, so the old sinks are
// never active alongside the new ones.
func (a *ZerologAdapter) InitializeSink(settings LoggerSettings) error {
	if a == nil {
		return NewError("adapter", errMsgNilAdapter)
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isInitialized.Load() {
		if err := a.teardownLocked(); err != nil {
			return err
		}
	}

	fileWriter, err := a.buildFileWriter(settings)
	if err != nil {
		return err
	}

	sinks := newSinkSet(fileWriter, a.consoleOut(), settings)

	a.fileWriter = fileWriter
	a.sinks = []io.Closer{fileWriter}
	a.queue = make(chan dispatchEntry, a.queueSize())
	a.workerWg.Add(1)
	go a.runWorker(a.queue, sinks)

	a.isInitialized.Store(true)
	return nil
}

// Write queues one record. It is safe for concurrent use and is a silent
// no-op when the adapter is not initialized. A full queue applies
// backpressure; the call returns once the record is accepted, not written.
func (a *ZerologAdapter) Write(severity Severity, message string) {
	if a == nil || !a.isInitialized.Load() {
		return
	}

	a.activeWrites.Add(1)
	defer a.activeWrites.Add(-1)

	a.mu.RLock()
	defer a.mu.RUnlock()

	// Double-check after acquiring the lock; Teardown may have won.
	if !a.isInitialized.Load() || a.queue == nil {
		return
	}
	a.queue <- dispatchEntry{severity: severity, message: message}
}

// Flush blocks until every record accepted before the call has been written
// to the sinks. It returns an error when the worker does not drain within
// the shutdown timeout. Flushing an uninitialized adapter is a no-op.
func (a *ZerologAdapter) Flush() error {
	if a == nil || !a.isInitialized.Load() {
		return nil
	}

	barrier := make(chan struct{})

	a.mu.RLock()
	if !a.isInitialized.Load() || a.queue == nil {
		a.mu.RUnlock()
		return nil
	}
	a.queue <- dispatchEntry{barrier: barrier}
	a.mu.RUnlock()

	select {
	case <-barrier:
		return nil
	case <-time.After(a.shutdownTimeout()):
		return NewError("timeout", errMsgFlushTimeout)
	}
}

// Teardown drains the queue, stops the worker and closes the sinks. It is
// safe to call multiple times; subsequent calls are no-ops.
func (a *ZerologAdapter) Teardown() error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.teardownLocked()
}

func (a *ZerologAdapter) teardownLocked() error {
	if !a.isInitialized.Load() {
		return nil
	}
	a.isInitialized.Store(false)
	close(a.queue)
	a.queue = nil

	done := make(chan struct{})
	go func() {
		a.workerWg.Wait()
		close(done)
	}()

	timeout := a.shutdownTimeout()
	select {
	case <-done:
	case <-time.After(timeout):
		fmt.Fprintf(os.Stderr, "logex: sink worker did not drain within %s\n", timeout)
	}

	var firstErr error
	for i := len(a.sinks) - 1; i >= 0; i-- {
		if err := a.sinks[i].Close(); err != nil && firstErr == nil {
			firstErr = WrapError(err, "io", "closing log sink")
		}
	}
	a.sinks = nil
	a.fileWriter = nil
	return firstErr
}

// ActiveWrites reports the number of Write calls currently in flight, for
// shutdown diagnostics and tests.
func (a *ZerologAdapter) ActiveWrites() int32 {
	if a == nil {
		return 0
	}
	return a.activeWrites.Load()
}

func (a *ZerologAdapter) consoleOut() io.Writer {
	if a.ConsoleOut != nil {
		return a.ConsoleOut
	}
	return os.Stderr
}

func (a *ZerologAdapter) queueSize() int {
	if a.QueueSize > 0 {
		return a.QueueSize
	}
	return defaultQueueSize
}

func (a *ZerologAdapter) shutdownTimeout() time.Duration {
	ms := a.ShutdownTimeoutMS
	if ms <= 0 {
		ms = defaultShutdownTimeoutMS
	}
	return time.Duration(ms) * time.Millisecond
}

package shared

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Reporter emits formatted progress lines to an underlying sink.
type Reporter interface {
	Printf(format string, args ...any)
}

type flusher interface {
	Flush() error
}

type writerReporter struct {
	writer io.Writer
	mutex  *sync.Mutex
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer, falling back to stdout.
// Writers exposing Flush are flushed after every line so progress stays visible while git runs.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return writerReporter{writer: writer, mutex: &sync.Mutex{}}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()

	if _, writeError := fmt.Fprintf(reporter.writer, format, args...); writeError != nil {
		return
	}
	if flushableWriter, supportsFlush := reporter.writer.(flusher); supportsFlush {
		_ = flushableWriter.Flush()
	}
}

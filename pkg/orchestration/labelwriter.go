package orchestration

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// LabelWriter prefixes each line written through it with a scenario label so
// interleaved output from concurrent scenarios stays attributable. Output is
// line-buffered: bytes are held until a newline arrives or Flush is called.
type LabelWriter struct {
	mu    sync.Mutex
	dst   io.Writer
	label string
	buf   bytes.Buffer
}

// NewLabelWriter wraps dst, tagging every line with label.
func NewLabelWriter(dst io.Writer, label string) *LabelWriter {
	return &LabelWriter{dst: dst, label: label}
}

func (w *LabelWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			return len(p), nil
		}
		line := w.buf.Next(i + 1)
		if _, err := fmt.Fprintf(w.dst, "[%s] %s", w.label, line); err != nil {
			return len(p), err
		}
	}
}

// Flush emits any trailing output that did not end in a newline.
func (w *LabelWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w.dst, "[%s] %s\n", w.label, w.buf.Bytes())
	w.buf.Reset()
	return err
}

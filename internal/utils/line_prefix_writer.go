package utils

import (
	"bytes"
	"io"
	"sync"
)

const newlineByteConstant = '\n'

// LinePrefixWriter copies mirrored process output to a destination, prefixing every line and flushing the
// destination after each complete line when it supports Flush.
type LinePrefixWriter struct {
	destination io.Writer
	prefix      []byte
	pending     bytes.Buffer
	mutex       sync.Mutex
}

// NewLinePrefixWriter wraps destination. A nil destination yields nil so callers can skip mirroring.
func NewLinePrefixWriter(destination io.Writer, prefix string) io.Writer {
	if destination == nil {
		return nil
	}
	return &LinePrefixWriter{destination: destination, prefix: []byte(prefix)}
}

// Write buffers partial lines and emits complete ones.
func (writer *LinePrefixWriter) Write(data []byte) (int, error) {
	if writer == nil || writer.destination == nil {
		return len(data), nil
	}

	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	writer.pending.Write(data)
	for {
		lineEnd := bytes.IndexByte(writer.pending.Bytes(), newlineByteConstant)
		if lineEnd < 0 {
			break
		}
		line := writer.pending.Next(lineEnd + 1)
		if emitError := writer.emit(line); emitError != nil {
			return len(data), emitError
		}
	}
	return len(data), nil
}

// Flush emits any buffered partial line.
func (writer *LinePrefixWriter) Flush() error {
	if writer == nil {
		return nil
	}

	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	if writer.pending.Len() == 0 {
		return nil
	}
	remainder := append(writer.pending.Bytes(), newlineByteConstant)
	writer.pending.Reset()
	return writer.emit(remainder)
}

func (writer *LinePrefixWriter) emit(line []byte) error {
	if _, writeError := writer.destination.Write(append(append([]byte{}, writer.prefix...), line...)); writeError != nil {
		return writeError
	}
	if flushableDestination, implementsFlush := writer.destination.(interface{ Flush() error }); implementsFlush {
		return flushableDestination.Flush()
	}
	return nil
}

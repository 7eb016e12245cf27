package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

var errInterrupted = errors.New("interrupted")

// LineReader reads lines in a background goroutine so a blocked read never
// prevents the caller from noticing context cancellation.
type LineReader struct {
	reader    *bufio.Reader
	lines     chan lineResult
	startOnce sync.Once
}

type lineResult struct {
	text string
	err  error
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{reader: bufio.NewReader(r)}
}

func (l *LineReader) pump() {
	for {
		text, err := l.reader.ReadString('\n')
		if text != "" {
			l.lines <- lineResult{text: text}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				l.lines <- lineResult{err: err}
			}
			close(l.lines)
			return
		}
	}
}

// ReadLine returns the next line without its trailing newline.
// It returns io.EOF when the input is exhausted and ctx.Err() when ctx is done.
func (l *LineReader) ReadLine(ctx context.Context) (string, error) {
	l.startOnce.Do(func() {
		l.lines = make(chan lineResult)
		go l.pump()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-l.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimRight(res.text, "\r\n"), nil
	}
}

package tuitest

import (
	"bytes"
	"io"
)

// terminalQuery pairs an escape sequence Bubble Tea emits while probing the
// terminal with the reply a real emulator would send back.
type terminalQuery struct {
	pattern  []byte
	response []byte
}

var terminalQueries = []terminalQuery{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:e2e2/e8e8/f0f0\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:e2e2/e8e8/f0f0\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0f0f/1717/2a2a\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0f0f/1717/2a2a\x1b\\")},
}

const (
	responderMaxBuffer = 256
	responderTail      = 64
)

type terminalResponder struct {
	w       io.Writer
	buf     []byte
	answers int
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerNext() {
	}
	// keep a tail so sequences split across reads are still detected
	if len(tr.buf) > responderMaxBuffer {
		tr.buf = tr.buf[len(tr.buf)-responderTail:]
	}
}

// answerNext replies to the earliest pending query in the buffer.
func (tr *terminalResponder) answerNext() bool {
	best, bestIdx := -1, -1
	for i, q := range terminalQueries {
		idx := bytes.Index(tr.buf, q.pattern)
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx {
			best, bestIdx = i, idx
		}
	}
	if best < 0 {
		return false
	}
	q := terminalQueries[best]
	tr.buf = tr.buf[bestIdx+len(q.pattern):]
	_, _ = tr.w.Write(q.response)
	tr.answers++
	return true
}

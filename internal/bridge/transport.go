package bridge

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"github.com/dshills/textsel/internal/logging"
	"github.com/dshills/textsel/internal/native"
)

// maxLineSize bounds a single inbound line.
const maxLineSize = 1 << 20

// Transport reads commands from a connection and applies them to a
// target, replying to failures on the messenger.
type Transport struct {
	reader *bufio.Reader
	dec    *Decoder
	out    native.Messenger
	log    *logging.Logger
}

// NewTransport creates a transport over r. Replies go to out, which is
// usually the JSONMessenger the controller itself sends on.
func NewTransport(r io.Reader, dec *Decoder, out native.Messenger, log *logging.Logger) *Transport {
	if log == nil {
		log = logging.Null()
	}
	return &Transport{
		reader: bufio.NewReaderSize(r, 64*1024),
		dec:    dec,
		out:    out,
		log:    log.WithComponent("bridge"),
	}
}

type readResult struct {
	line []byte
	err  error
}

// Serve applies lines until EOF or ctx is done. The target is only
// touched from the calling goroutine. Reads happen on a separate
// goroutine so that cancellation is seen while the reader is idle; that
// goroutine exits once its pending read returns.
func (t *Transport) Serve(ctx context.Context, target Target) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lines := make(chan readResult)
	go func() {
		for {
			line, err := t.readLine()
			select {
			case lines <- readResult{line: line, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-lines:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if len(r.line) > 0 {
				t.apply(target, r.line)
			}
			if r.err != nil {
				if errors.Is(r.err, io.EOF) {
					return nil
				}
				return fmt.Errorf("read: %w", r.err)
			}
		}
	}
}

func (t *Transport) readLine() ([]byte, error) {
	var buf []byte
	for {
		chunk, isPrefix, err := t.reader.ReadLine()
		buf = append(buf, chunk...)
		if len(buf) > maxLineSize {
			return nil, fmt.Errorf("line exceeds %d bytes", maxLineSize)
		}
		if err != nil || !isPrefix {
			return bytes.TrimSpace(buf), err
		}
	}
}

func (t *Transport) apply(target Target, line []byte) {
	cmd, err := t.dec.Decode(line)
	if err != nil {
		t.log.Warn("decode: %v", err)
		t.reply(gjson.GetBytes(line, "type").String(), err)
		return
	}
	if err := cmd.Run(target); err != nil {
		t.log.Debug("%s: %v", cmd.Name(), err)
		t.reply(cmd.Name(), err)
	}
}

func (t *Transport) reply(input string, err error) {
	if sendErr := t.out.Send(ErrorReply{Input: input, Message: err.Error()}); sendErr != nil {
		t.log.Error("send error reply: %v", sendErr)
	}
}

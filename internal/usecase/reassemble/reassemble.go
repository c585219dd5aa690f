// Package reassemble rebuilds complete lines from arbitrarily chunked input.
package reassemble

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aalvaropc/brcstream/internal/domain"
)

const lineTerminator = "\n"

// Reassembler carries the unterminated tail of decoded text between chunks.
// At the start of each Feed the carry-over holds no line terminator.
type Reassembler struct {
	dec   *Decoder
	carry string
}

func New() *Reassembler {
	return &Reassembler{dec: NewDecoder()}
}

// Feed decodes chunk and returns the lines it completes, in order. The text
// after the last terminator is kept as carry-over, even when it is empty.
func (r *Reassembler) Feed(chunk []byte) ([]string, error) {
	text, err := r.dec.Decode(chunk, false)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(r.carry+text, lineTerminator)
	last := len(parts) - 1
	r.carry = parts[last]
	return parts[:last], nil
}

// Flush finalizes decoding and returns the carry-over as the last line.
// The returned line may be empty.
func (r *Reassembler) Flush() (string, error) {
	text, err := r.dec.Decode(nil, true)
	line := r.carry + text
	r.carry = ""
	return line, err
}

// Pending returns the current carry-over.
func (r *Reassembler) Pending() string {
	return r.carry
}

// Stats reports how much of a stream was consumed.
type Stats struct {
	Bytes  int64
	Chunks int64
}

// Stream reads src in chunks of chunkSize bytes and hands every batch of
// complete lines to fn, in stream order. After the source is exhausted the
// carry-over is handed to fn as a final single-line batch.
//
// A read error or an error returned by fn stops the stream.
func Stream(ctx context.Context, src io.Reader, chunkSize int, fn func(lines []string) error) (Stats, error) {
	if chunkSize <= 0 {
		chunkSize = domain.DefaultChunkSize
	}

	var st Stats
	r := New()
	buf := make([]byte, chunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return st, &domain.OpError{
				Op:   "reassemble.read",
				Kind: domain.KindCanceled,
				Err:  err,
			}
		}

		n, rerr := src.Read(buf)
		if n > 0 {
			st.Bytes += int64(n)
			st.Chunks++

			lines, err := r.Feed(buf[:n])
			if err != nil {
				return st, decodeError(err)
			}
			if len(lines) > 0 {
				if err := fn(lines); err != nil {
					return st, err
				}
			}
		}

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return st, &domain.OpError{
				Op:   "reassemble.read",
				Kind: domain.KindExecution,
				Err:  rerr,
			}
		}
	}

	last, err := r.Flush()
	if err != nil {
		return st, decodeError(err)
	}
	return st, fn([]string{last})
}

func decodeError(err error) error {
	return &domain.OpError{
		Op:   "reassemble.decode",
		Kind: domain.KindExecution,
		Err:  err,
	}
}

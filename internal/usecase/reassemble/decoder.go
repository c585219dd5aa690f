package reassemble

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decoder turns a sequence of byte chunks into UTF-8 text. Bytes of a multi-byte
// sequence split across chunks are held back until the next chunk completes them.
// A leading byte order mark is dropped and invalid bytes become U+FFFD.
//
// A Decoder is stateful and must see chunks in stream order.
type Decoder struct {
	t       transform.Transformer
	pending []byte
	dst     []byte
}

func NewDecoder() *Decoder {
	return &Decoder{t: unicode.UTF8BOM.NewDecoder()}
}

// Decode decodes chunk together with any bytes held back from the previous call.
// When final is true the decoder is drained and reset.
func (d *Decoder) Decode(chunk []byte, final bool) (string, error) {
	src := chunk
	if len(d.pending) > 0 {
		src = append(d.pending, chunk...)
		d.pending = nil
	}

	if need := len(src)*3 + utf8.UTFMax; cap(d.dst) < need {
		d.dst = make([]byte, need)
	}
	dst := d.dst[:cap(d.dst)]

	var out []byte
	for {
		nDst, nSrc, err := d.t.Transform(dst, src, final)
		out = append(out, dst[:nDst]...)
		src = src[nSrc:]

		switch {
		case err == nil:
			if final {
				d.t.Reset()
			}
			return string(out), nil
		case errors.Is(err, transform.ErrShortDst):
			dst = make([]byte, len(dst)*2)
		case errors.Is(err, transform.ErrShortSrc):
			d.pending = append([]byte(nil), src...)
			return string(out), nil
		default:
			return string(out), err
		}
	}
}

package codec

import (
	"context"
	"log/slog"

	"github.com/dao-xyz/bufcodec/internal/buf"
	"github.com/dao-xyz/bufcodec/internal/logger"
)

// Widths of the fixed-size integer encodings.
const (
	U8Size   = 1
	U16Size  = 2
	U32Size  = 4
	U64Size  = 8
	U128Size = 16
	U256Size = 32
	U512Size = 64
)

// CheckRange reports whether width bytes starting at offset fit both the
// declared length dataLen and the physical length bufLen. It returns nil or a
// *BoundsError.
func CheckRange(bufLen, dataLen, offset, width int) error {
	if _, ok := buf.End(offset, width, dataLen); !ok {
		return &BoundsError{Offset: offset, Width: width, DataLen: dataLen, BufLen: bufLen}
	}
	if _, ok := buf.End(offset, width, bufLen); !ok {
		return &BoundsError{Offset: offset, Width: width, DataLen: dataLen, BufLen: bufLen}
	}
	return nil
}

// window returns b[offset:offset+width] or a *BoundsError tagged with op.
func window(op string, b []byte, dataLen, offset, width int) ([]byte, error) {
	w, ok := buf.Window(b, dataLen, offset, width)
	if !ok {
		return nil, &BoundsError{Op: op, Offset: offset, Width: width, DataLen: dataLen, BufLen: len(b)}
	}
	return w, nil
}

// SetLogger routes the codec's diagnostics to l. A nil logger discards them.
func SetLogger(l *slog.Logger) { logger.Set(l) }

func trace(op string, b []byte, dataLen, offset int) {
	l := logger.L()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug(op, "buf_len", len(b), "data_len", dataLen, "offset", offset)
}

package transport

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/instrhub/go-scpi/scpi"
)

// hasTerminator reports whether the terminator sequence appears at the tail
// of the accumulated buffer.
func hasTerminator(buf []byte, term string) bool {
	return len(term) > 0 && bytes.HasSuffix(buf, []byte(term))
}

// decodeLine converts the accumulated bytes into a string, dropping byte
// sequences that are not valid text and stripping trailing whitespace.
func decodeLine(buf []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(buf), ""))
}

// wrapIOErr maps a backend error onto the scpi error taxonomy: deadline
// expiry becomes scpi.ErrTimeout, everything else scpi.ErrIO. The backend
// message is preserved.
func wrapIOErr(err error, op string) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if errors.Is(err, os.ErrDeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s: %v", scpi.ErrTimeout, op, err)
	}

	return fmt.Errorf("%w: %s: %v", scpi.ErrIO, op, err)
}

package executor

import (
	"bytes"
	"io"
)

// indentPrefix is prepended to every output line of a task's subprocess.
const indentPrefix = "    "

// indentWriter rewrites a byte stream so every line starts with
// indentPrefix. It tracks line state across Write calls, so partial lines
// split over multiple writes are only prefixed once.
type indentWriter struct {
	w           io.Writer
	atLineStart bool
}

func newIndentWriter(w io.Writer) *indentWriter {
	return &indentWriter{w: w, atLineStart: true}
}

// Write implements io.Writer. The returned count reports consumed input
// bytes, not emitted bytes, so callers see a normal writer.
func (iw *indentWriter) Write(p []byte) (int, error) {
	var buf bytes.Buffer

	for _, b := range p {
		if iw.atLineStart && b != '\n' {
			buf.WriteString(indentPrefix)
		}
		buf.WriteByte(b)
		iw.atLineStart = b == '\n'
	}

	if _, err := iw.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

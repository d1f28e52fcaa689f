package executor

import (
	"bytes"
	"testing"
)

func TestIndentWriter_PrefixesLines(t *testing.T) {
	var buf bytes.Buffer
	w := newIndentWriter(&buf)

	if _, err := w.Write([]byte("one\ntwo\n")); err != nil {
		t.Fatal(err)
	}

	want := "    one\n    two\n"
	if got := buf.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestIndentWriter_PartialLinesAcrossWrites(t *testing.T) {
	var buf bytes.Buffer
	w := newIndentWriter(&buf)

	for _, part := range []string{"he", "llo\nwor", "ld\n"} {
		if _, err := w.Write([]byte(part)); err != nil {
			t.Fatal(err)
		}
	}

	want := "    hello\n    world\n"
	if got := buf.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestIndentWriter_BlankLinesStayBlank(t *testing.T) {
	var buf bytes.Buffer
	w := newIndentWriter(&buf)

	if _, err := w.Write([]byte("a\n\nb\n")); err != nil {
		t.Fatal(err)
	}

	want := "    a\n\n    b\n"
	if got := buf.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestIndentWriter_ReportsConsumedBytes(t *testing.T) {
	var buf bytes.Buffer
	w := newIndentWriter(&buf)

	n, err := w.Write([]byte("abc\n"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("expected consumed count 4, got %d", n)
	}
}

func TestShellQuote(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"with space", "'with space'"},
		{"", "''"},
		{"a'b", `'a'"'"'b'`},
		{"/tmp/file.sh", "/tmp/file.sh"},
		{"$HOME", "'$HOME'"},
	}

	for _, tc := range cases {
		if got := shellQuote(tc.in); got != tc.want {
			t.Errorf("shellQuote(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

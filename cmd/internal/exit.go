package internal

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Fatal will Echo the message to stderr and os.Exit with code 1.
func Fatal(msg string, args ...any) {
	Echo(os.Stderr, msg, args...)
	os.Exit(1)
}

// Echo will emit the given message to w without any logging formatting, ensuring it ends with a newline.
func Echo(w io.Writer, msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = fmt.Fprintf(w, msg, args...)
}

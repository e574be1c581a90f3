package scpi

import "strings"

// Terminator byte sequences understood by their logical names.
const (
	TermCR   = "\r"
	TermLF   = "\n"
	TermCRLF = "\r\n"
	TermLFCR = "\n\r"
)

// ParseTerminator maps the logical terminator names "CR", "LF", "CRLF" and
// "LFCR" (case-insensitive) to their literal byte sequences. Any other string
// is returned unchanged and used literally.
func ParseTerminator(s string) string {
	switch strings.ToUpper(s) {
	case "CR":
		return TermCR
	case "LF":
		return TermLF
	case "CRLF":
		return TermCRLF
	case "LFCR":
		return TermLFCR
	default:
		return s
	}
}

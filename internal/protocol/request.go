// Package protocol implements the HTTP/1.1 subset this server speaks: parsing
// a request line and header block out of a pre-read buffer, and the fixed
// response status lines and bodies the method handlers emit.
package protocol

import (
	"errors"
	"regexp"
	"strconv"
)

// NoContentLength is the sentinel value of [Request.ContentLength] when the
// client sent no Content-Length header.
const NoContentLength = -1

// requestLineRE mirrors the original server's REQEX: method, target path
// (without the leading slash), and HTTP version, each captured.
var requestLineRE = regexp.MustCompile(`^([a-zA-Z]{1,8}) /([a-zA-Z0-9.-]{1,63}) (HTTP/[0-9]\.[0-9])\r\n`)

// headerLineRE mirrors the original server's HEADEX: a header name and value
// pair terminated by CRLF.
var headerLineRE = regexp.MustCompile(`^([a-zA-Z0-9.-]{1,128}): ([ -~]{1,128})\r\n`)

// ErrMalformed is returned by [Parse] for any grammar violation: a malformed
// request line, a malformed header, a missing block terminator, or a header
// value that fails to parse where an integer is required.
var ErrMalformed = errors.New("protocol: malformed request")

// Request is the parsed representation of one HTTP request.
type Request struct {
	Method  string
	Target  string // path, without the leading slash
	Version string

	// ContentLength is the parsed value of the Content-Length header, or
	// NoContentLength if the header was absent.
	ContentLength int

	// RequestID is the parsed value of the Request-Id header, or 0 if
	// absent.
	RequestID int

	// Prebuffered holds body bytes that were already read into the header
	// buffer because the bounded header read extended past the
	// terminating CRLFCRLF.
	Prebuffered []byte
}

// Parse parses a Request out of buf[:n], where buf[:n] is assumed to contain
// at least one full header block (terminated by "\r\n\r\n"); any bytes past
// the terminator are treated as prebuffered body.
//
// Parse aborts and returns ErrMalformed on the first grammar violation,
// including the first header whose value fails to parse as an integer where
// an integer is required (Content-Length, Request-Id) — unlike the source
// implementation, which kept scanning headers (and could therefore emit more
// than one response) after such a failure.
func Parse(buf []byte, n int) (Request, error) {
	data := buf[:n]

	m := requestLineRE.FindSubmatchIndex(data)
	if m == nil {
		return Request{}, ErrMalformed
	}

	req := Request{
		Method:        string(data[m[2]:m[3]]),
		Target:        string(data[m[4]:m[5]]),
		Version:       string(data[m[6]:m[7]]),
		ContentLength: NoContentLength,
		RequestID:     0,
	}

	rest := data[m[1]:]

	for {
		if len(rest) >= 2 && rest[0] == '\r' && rest[1] == '\n' {
			req.Prebuffered = rest[2:]
			return req, nil
		}

		hm := headerLineRE.FindSubmatchIndex(rest)
		if hm == nil {
			return Request{}, ErrMalformed
		}

		name := string(rest[hm[2]:hm[3]])
		value := string(rest[hm[4]:hm[5]])

		switch name {
		case "Content-Length":
			v, err := strconv.Atoi(value)
			if err != nil || v < 0 {
				return Request{}, ErrMalformed
			}

			req.ContentLength = v
		case "Request-Id":
			v, err := strconv.Atoi(value)
			if err != nil {
				return Request{}, ErrMalformed
			}

			req.RequestID = v
		}

		rest = rest[hm[1]:]
	}
}

package protocol

import "fmt"

// Status is one of the fixed response dispositions this server emits. Each
// carries the exact reason phrase and body the source server hard-coded;
// these are wire contract, not cosmetic, since Content-Length is derived
// from the body length.
type Status struct {
	Code   int
	Reason string
	Body   string
}

var (
	StatusOK                  = Status{200, "OK", "OK\n"}
	StatusCreated             = Status{201, "Created", "Created\n"}
	StatusBadRequest          = Status{400, "Bad Request", "Bad Request\n"}
	StatusForbidden           = Status{403, "Forbidden", "Forbidden\n"}
	StatusNotFound            = Status{404, "Not Found", "Not Found\n"}
	StatusInternalServerError = Status{500, "Internal Server Error", "Internal Server Error\n"}
	StatusNotImplemented      = Status{501, "Not Implemented", "Not Implemented\n"}
	StatusVersionNotSupported = Status{505, "Version Not Supported", "Version Not Supported\n"}
)

// Head renders the status line and Content-Length header for body, followed
// by the blank line that separates head from body.
func (s Status) Head() string {
	return fmt.Sprintf("HTTP/1.1 %d %s\r\nContent-Length: %d\r\n\r\n", s.Code, s.Reason, len(s.Body))
}

// Bytes renders the full response: head followed by body.
func (s Status) Bytes() []byte {
	return []byte(s.Head() + s.Body)
}

// GetOKHead renders the head of a successful GET response, whose
// Content-Length is the file size rather than a fixed body length.
func GetOKHead(size int64) []byte {
	return []byte(fmt.Sprintf("HTTP/1.1 200 OK\r\nContent-Length: %d\r\n\r\n", size))
}

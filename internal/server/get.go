package server

import (
	"errors"
	"os"
	"syscall"

	"fileserver/internal/netio"
	"fileserver/internal/protocol"
)

// handleGET implements the GET state machine: precondition checks, a
// directory probe, a reader-locked open-and-stat, and a splice of the file's
// contents to conn.
//
// w is the connection's response sink; it is the same net.Conn used to read
// the request, kept as a separate parameter to make the write path explicit
// at call sites.
func (s *Server) handleGET(w responseWriter, req protocol.Request) {
	if req.ContentLength != protocol.NoContentLength || len(req.Prebuffered) > 0 {
		writeStatus(w, protocol.StatusBadRequest)
		return
	}

	if s.isDirectory(req.Target) {
		writeStatus(w, protocol.StatusForbidden)
		s.auditor.Log("GET", req.Target, protocol.StatusForbidden.Code, req.RequestID)

		return
	}

	lock := s.registry.Lock(req.Target)
	lock.RLock()
	defer lock.RUnlock()

	f, err := s.fs.Open(req.Target)
	if err != nil {
		status := classifyOpenError(err)
		writeStatus(w, status)
		s.auditor.Log("GET", req.Target, status.Code, req.RequestID)

		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeStatus(w, protocol.StatusInternalServerError)
		s.auditor.Log("GET", req.Target, protocol.StatusInternalServerError.Code, req.RequestID)

		return
	}

	size := info.Size()

	if _, err := netio.WriteExactN(w, protocol.GetOKHead(size)); err != nil {
		return
	}

	s.auditor.Log("GET", req.Target, protocol.StatusOK.Code, req.RequestID)

	if _, err := netio.CopyN(w, f, size); err != nil {
		// The response head is already on the wire; a second response is
		// not a valid HTTP message. The connection is torn down by the
		// caller once the handler returns.
		return
	}
}

// isDirectory reports whether target names a directory, using the same
// open-as-directory probe the GET and PUT handlers both perform before
// taking any lock.
func (s *Server) isDirectory(target string) bool {
	f, err := s.fs.OpenFile(target, os.O_RDONLY|syscall.O_DIRECTORY, 0)
	if err != nil {
		return false
	}

	f.Close()

	return true
}

// classifyOpenError maps a filesystem open error to the response status the
// error table in the server's design calls for.
func classifyOpenError(err error) protocol.Status {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return protocol.StatusNotFound
	case errors.Is(err, os.ErrPermission):
		return protocol.StatusForbidden
	default:
		return protocol.StatusInternalServerError
	}
}

func writeStatus(w responseWriter, status protocol.Status) {
	_, _ = netio.WriteExactN(w, status.Bytes())
}

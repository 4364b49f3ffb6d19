package server

import (
	"os"
	"time"

	"fileserver/internal/fs"
	"fileserver/internal/netio"
	"fileserver/internal/protocol"
)

// handlePUT implements the PUT state machine: precondition check, directory
// probe, writer-locked exclusive-create-or-truncate, and ingestion of the
// request body (prebuffered bytes first, then the remainder spliced from
// conn).
func (s *Server) handlePUT(conn requestConn, req protocol.Request, readTimeout time.Duration) {
	if req.ContentLength == protocol.NoContentLength {
		writeStatus(conn, protocol.StatusBadRequest)
		return
	}

	if s.isDirectory(req.Target) {
		writeStatus(conn, protocol.StatusForbidden)
		s.auditor.Log("PUT", req.Target, protocol.StatusForbidden.Code, req.RequestID)

		return
	}

	lock := s.registry.Lock(req.Target)
	lock.Lock()
	defer lock.Unlock()

	f, status, err := s.createOrTruncate(req.Target)
	if err != nil {
		writeStatus(conn, status)
		s.auditor.Log("PUT", req.Target, status.Code, req.RequestID)

		return
	}
	defer f.Close()

	if _, err := netio.WriteExactN(f, req.Prebuffered); err != nil {
		writeStatus(conn, protocol.StatusInternalServerError)
		s.auditor.Log("PUT", req.Target, protocol.StatusInternalServerError.Code, req.RequestID)

		return
	}

	remaining := int64(req.ContentLength - len(req.Prebuffered))
	if remaining > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			writeStatus(conn, protocol.StatusInternalServerError)
			s.auditor.Log("PUT", req.Target, protocol.StatusInternalServerError.Code, req.RequestID)

			return
		}

		if _, err := netio.CopyN(f, conn, remaining); err != nil {
			writeStatus(conn, protocol.StatusInternalServerError)
			s.auditor.Log("PUT", req.Target, protocol.StatusInternalServerError.Code, req.RequestID)

			return
		}
	}

	writeStatus(conn, status)
	s.auditor.Log("PUT", req.Target, status.Code, req.RequestID)
}

// createOrTruncate implements PUT's exclusive-create-or-truncate sequence:
// O_CREATE|O_EXCL first, and on EEXIST a second open with O_TRUNC. The
// returned status is 201 for a fresh create, 200 for a truncate of an
// existing file.
func (s *Server) createOrTruncate(target string) (fs.File, protocol.Status, error) {
	f, err := s.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
	if err == nil {
		return f, protocol.StatusCreated, nil
	}

	if !os.IsExist(err) {
		return nil, classifyOpenError(err), err
	}

	f, err = s.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, classifyOpenError(err), err
	}

	return f, protocol.StatusOK, nil
}

package server

import (
	"errors"
	"net"

	"fileserver/internal/netio"
	"fileserver/internal/protocol"
)

// headerDelim terminates the HTTP header block.
var headerDelim = []byte("\r\n\r\n")

// handleConnection reads one request off conn, parses and dispatches it, and
// always closes conn before returning. This is the entire unit of work a
// worker goroutine repeats forever.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, s.bufferSize)

	n, err := netio.ReadUntil(conn, buf, headerDelim, s.readTimeout)
	if err != nil {
		writeStatus(conn, protocol.StatusBadRequest)
		return
	}

	req, err := protocol.Parse(buf, n)
	if err != nil {
		writeStatus(conn, protocol.StatusBadRequest)
		return
	}

	s.dispatch(conn, req)
}

// dispatch routes a parsed request to the matching method handler, after the
// two checks every request must pass regardless of method: a supported HTTP
// version and a recognised method.
func (s *Server) dispatch(conn net.Conn, req protocol.Request) {
	if req.Version != "HTTP/1.1" {
		writeStatus(conn, protocol.StatusVersionNotSupported)
		return
	}

	switch req.Method {
	case "GET":
		s.handleGET(conn, req)
	case "PUT":
		s.handlePUT(conn, req, s.readTimeout)
	default:
		writeStatus(conn, protocol.StatusNotImplemented)
	}
}

// workerLoop pops connections off the queue until the queue is closed,
// handling each one in turn. A worker never exits because a single
// connection failed; it only stops once the queue reports no more work is
// coming.
func (s *Server) workerLoop() {
	defer s.workers.Done()

	for {
		conn, ok := s.queue.Pop()
		if !ok {
			return
		}

		s.handleConnection(conn)
	}
}

// acceptLoop runs on the caller's goroutine, pushing accepted connections
// onto the queue until the listener is closed (via [Server.Shutdown]). Any
// other accept error is skipped and the loop keeps accepting.
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}

			continue
		}

		s.queue.Push(conn)
	}
}

// Package server ties the bounded queue, the lock registry, and the
// filesystem abstraction together into the accept/dispatch pipeline: an
// acceptor loop feeding a fixed worker pool, each worker handling one
// connection end-to-end per the GET/PUT state machines.
package server

import (
	"context"
	"io"
	"net"
	"sync"
	"time"

	"fileserver/internal/fs"
	"fileserver/internal/queue"
	"fileserver/internal/registry"
)

// Server is the accept/dispatch pipeline: one acceptor (the goroutine that
// calls [Server.Run]) and a fixed pool of worker goroutines draining a
// bounded queue of accepted connections.
type Server struct {
	fs       fs.FS
	registry *registry.Registry
	auditor  *Auditor
	listener net.Listener

	queue       *queue.Bounded[net.Conn]
	workerCount int
	workers     sync.WaitGroup

	readTimeout time.Duration
	bufferSize  int
}

// New constructs a Server. workerCount is the fixed number of worker
// goroutines (and, absent an explicit queue capacity in cfg, the bounded
// queue's capacity too — matching the source design's "capacity equal to
// the worker count").
func New(listener net.Listener, filesystem fs.FS, cfg Config, workerCount int, auditLog io.Writer) *Server {
	capacity := cfg.QueueCapacity
	if capacity <= 0 {
		capacity = workerCount
	}

	return &Server{
		fs:          filesystem,
		registry:    registry.New(cfg.NWayFairness),
		auditor:     NewAuditor(auditLog),
		listener:    listener,
		queue:       queue.NewBounded[net.Conn](capacity),
		workerCount: workerCount,
		readTimeout: cfg.ReadTimeout(),
		bufferSize:  cfg.BufferSize,
	}
}

// Run spawns the worker pool and then becomes the acceptor: it blocks,
// pushing accepted connections onto the queue, until the listener is closed
// (typically via [Server.Shutdown]), at which point it drains the worker
// pool and returns.
func (s *Server) Run() {
	for range s.workerCount {
		s.workers.Add(1)

		go s.workerLoop()
	}

	s.acceptLoop()

	s.queue.Close()
	s.workers.Wait()
}

// Shutdown stops accepting new connections and waits for in-flight and
// already-queued connections to finish, or for ctx to be done first. The
// source server has no shutdown path; this is the graceful-shutdown
// extension its design notes explicitly permit, as long as it preserves the
// server's request-handling invariants — which it does, since it never
// interrupts a worker mid-request, only stops feeding new work in.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.listener.Close(); err != nil {
		return err
	}

	done := make(chan struct{})

	go func() {
		s.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

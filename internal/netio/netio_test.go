package netio

import (
	"bytes"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

func Test_ReadUntil_Stops_At_Delimiter(t *testing.T) {
	t.Parallel()

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		_, _ = client.Write([]byte("GET /a HTTP/1.1\r\n\r\nextra"))
	}()

	buf := make([]byte, 4096)

	n, err := ReadUntil(server, buf, []byte("\r\n\r\n"), time.Second)
	if err != nil {
		t.Fatalf("ReadUntil: %v", err)
	}

	if !bytes.Contains(buf[:n], []byte("\r\n\r\n")) {
		t.Fatalf("buf[:n] = %q, want it to contain the delimiter", buf[:n])
	}
}

func Test_ReadUntil_Returns_On_Clean_EOF_Without_Error(t *testing.T) {
	t.Parallel()

	client, server := net.Pipe()
	defer server.Close()

	go func() {
		_, _ = client.Write([]byte("short"))
		_ = client.Close()
	}()

	buf := make([]byte, 4096)

	n, err := ReadUntil(server, buf, []byte("\r\n\r\n"), time.Second)
	if err != nil {
		t.Fatalf("ReadUntil: %v", err)
	}
	if string(buf[:n]) != "short" {
		t.Fatalf("buf[:n] = %q, want %q", buf[:n], "short")
	}
}

func Test_ReadUntil_Times_Out(t *testing.T) {
	t.Parallel()

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	buf := make([]byte, 16)

	_, err := ReadUntil(server, buf, []byte("\r\n\r\n"), 20*time.Millisecond)
	if err == nil {
		t.Fatalf("ReadUntil: want timeout error, got nil")
	}

	var netErr net.Error
	if !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Fatalf("ReadUntil: err=%v, want a net.Error with Timeout()==true", err)
	}
}

func Test_ReadExactN_Reads_Full_Buffer(t *testing.T) {
	t.Parallel()

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() { _, _ = client.Write([]byte("hello!")) }()

	buf := make([]byte, 6)

	n, err := ReadExactN(server, buf, time.Second)
	if err != nil {
		t.Fatalf("ReadExactN: %v", err)
	}
	if n != 6 || string(buf) != "hello!" {
		t.Fatalf("got n=%d buf=%q", n, buf)
	}
}

func Test_ReadExactN_Short_Close_Is_UnexpectedEOF(t *testing.T) {
	t.Parallel()

	client, server := net.Pipe()
	defer server.Close()

	go func() {
		_, _ = client.Write([]byte("ab"))
		_ = client.Close()
	}()

	buf := make([]byte, 6)

	_, err := ReadExactN(server, buf, time.Second)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadExactN: err=%v, want ErrUnexpectedEOF", err)
	}
}

func Test_WriteExactN_Writes_All_Bytes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	n, err := WriteExactN(&buf, []byte("payload"))
	if err != nil {
		t.Fatalf("WriteExactN: %v", err)
	}
	if n != len("payload") || buf.String() != "payload" {
		t.Fatalf("got n=%d buf=%q", n, buf.String())
	}
}

type shortWriter struct{ limit int }

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		return w.limit, nil
	}

	return len(p), nil
}

func Test_WriteExactN_Reports_Short_Write(t *testing.T) {
	t.Parallel()

	_, err := WriteExactN(&shortWriter{limit: 2}, []byte("payload"))
	if !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("WriteExactN: err=%v, want ErrShortWrite", err)
	}
}

func Test_CopyN_Full_Transfer(t *testing.T) {
	t.Parallel()

	src := bytes.NewReader([]byte("0123456789"))

	var dst bytes.Buffer

	n, err := CopyN(&dst, src, 10)
	if err != nil {
		t.Fatalf("CopyN: %v", err)
	}
	if n != 10 || dst.String() != "0123456789" {
		t.Fatalf("got n=%d dst=%q", n, dst.String())
	}
}

func Test_CopyN_Short_Source_Is_UnexpectedEOF(t *testing.T) {
	t.Parallel()

	src := bytes.NewReader([]byte("short"))

	var dst bytes.Buffer

	n, err := CopyN(&dst, src, 10)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("CopyN: err=%v, want ErrUnexpectedEOF", err)
	}
	if n != 5 {
		t.Fatalf("n = %d, want 5", n)
	}
}

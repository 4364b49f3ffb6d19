// Command fileserver runs the concurrent HTTP/1.1 file server.
//
// Usage:
//
//	fileserver <port>
//	fileserver -t <N> <port>
//	fileserver --threads <N> <port>
//	fileserver --write-config <port>
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	flag "github.com/spf13/pflag"

	"fileserver/internal/fs"
	"fileserver/internal/server"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, errOut *os.File) int {
	flagSet := flag.NewFlagSet("fileserver", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard) // unrecognised-flag diagnostics must stay silent

	threadsArg := flagSet.StringP("threads", "t", "4", "worker thread count")
	writeConfig := flagSet.Bool("write-config", false, "write the resolved config to .fileserver.json and exit")

	if err := flagSet.Parse(args); err != nil {
		return 1
	}

	rest := flagSet.Args()
	if len(rest) != 1 {
		return 1
	}

	port, err := strconv.Atoi(rest[0])
	if err != nil {
		fmt.Fprintln(errOut, "Invalid Port")
		return 1
	}

	threads, err := strconv.Atoi(*threadsArg)
	if err != nil || threads < 1 {
		fmt.Fprintln(errOut, "Invalid threads")
		return 1
	}

	cfg, err := server.LoadConfig(".")
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	if *writeConfig {
		if err := server.WriteConfig(".", cfg); err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}

		return 0
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		fmt.Fprintln(errOut, "Invalid Port")
		return 1
	}

	srv := server.New(ln, fs.NewReal(), cfg, threads, errOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	srv.Run()

	return 0
}

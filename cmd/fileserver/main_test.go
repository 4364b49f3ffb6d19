package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Run_Rejects_Wrong_Arity(t *testing.T) {
	t.Parallel()

	testCases := [][]string{
		{},
		{"8080", "extra"},
		{"-t"},
		{"-t", "4"},
	}

	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)

	defer devNull.Close()

	for _, args := range testCases {
		code := run(args, devNull)
		require.NotZero(t, code, "args=%v", args)
	}
}

func Test_Run_Rejects_Malformed_Port(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	defer r.Close()

	code := run([]string{"not-a-port"}, w)
	w.Close()

	require.NotZero(t, code)

	buf := make([]byte, 256)

	n, _ := r.Read(buf)
	require.Contains(t, string(buf[:n]), "Invalid Port")
}

func Test_Run_Rejects_Malformed_Thread_Count(t *testing.T) {
	t.Parallel()

	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)

	defer devNull.Close()

	code := run([]string{"-t", "0", "8080"}, devNull)
	require.NotZero(t, code)
}

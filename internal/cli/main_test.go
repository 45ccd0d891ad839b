package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
)

// Environment understood by the test binary when it stands in for cargo
const (
	fakeCargoEnv  = "BURDEN_TEST_FAKE_CARGO"
	fakeOutputEnv = "BURDEN_TEST_FAKE_OUTPUT"
	fakeStderrEnv = "BURDEN_TEST_FAKE_STDERR"
	fakeArgsEnv   = "BURDEN_TEST_FAKE_ARGS"
	fakeExitEnv   = "BURDEN_TEST_FAKE_EXIT"
)

func TestMain(m *testing.M) {
	if os.Getenv(fakeCargoEnv) == "1" {
		os.Exit(fakeCargo())
	}
	os.Exit(m.Run())
}

// fakeCargo replays a recorded message stream and exit status
func fakeCargo() int {
	if path := os.Getenv(fakeArgsEnv); path != "" {
		if err := os.WriteFile(path, []byte(strings.Join(os.Args[1:], "\n")), 0o600); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}
	if path := os.Getenv(fakeOutputEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return 2
		}
	}
	if msg := os.Getenv(fakeStderrEnv); msg != "" {
		fmt.Fprint(os.Stderr, msg)
	}
	if code := os.Getenv(fakeExitEnv); code != "" {
		n, err := strconv.Atoi(code)
		if err != nil {
			return 2
		}
		return n
	}
	return 0
}

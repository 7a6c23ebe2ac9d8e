package main

import (
	"fmt"
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain registers ntc as an in-process command testscript can exec,
// the standard way to integration-test a CLI's argv/stdout/exit-code
// contract without actually building a binary.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"ntc": ntcMain,
	}))
}

func ntcMain() int {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ntc: %v\n", err)
		return 1
	}
	return 0
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}

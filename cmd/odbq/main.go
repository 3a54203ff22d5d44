package main

import (
	"fmt"
	"os"

	_ "github.com/alexbrainman/odbc"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

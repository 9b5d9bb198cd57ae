package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, bad.Sprint("osint-framework: "), err)
		os.Exit(1)
	}
}

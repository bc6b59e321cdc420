package main

import (
	"fmt"
	"os"
)

func debugLog(format string, a ...any) {
	if Debug {
		msg := fmt.Sprintf(format, a...)
		fmt.Fprintf(os.Stderr, "[confluence-sync] %s", msg)
	}
}

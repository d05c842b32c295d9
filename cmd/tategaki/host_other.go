//go:build !linux

package main

import (
	"fmt"
	"runtime"
)

func connectHost(string) (windowHost, error) {
	return nil, fmt.Errorf("no window host for %s: only X11 on linux is supported", runtime.GOOS)
}

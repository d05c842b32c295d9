//go:build linux

package main

import "github.com/1broseidon/tategaki/internal/platform"

func connectHost(display string) (windowHost, error) {
	backend, err := platform.NewLinuxBackendFromDisplay(display)
	if err != nil {
		return nil, err
	}
	return backend, nil
}

//go:build !windows

package main

// enableVT reports true; terminals here handle ANSI sequences natively.
func enableVT() bool { return true }

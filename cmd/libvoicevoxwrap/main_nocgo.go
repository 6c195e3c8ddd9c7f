//go:build !cgo

package main

// Without cgo there is nothing to export; the package still builds so the
// handle bridge can be tested.
func main() {}

//go:build cgo

// Command libvoicevoxwrap builds the wrapper as a C shared library:
//
//	go build -buildmode=c-shared -o libvoicevoxwrap.so ./cmd/libvoicevoxwrap
//
// Strings are NUL-terminated UTF-16. Wrappers are referenced by opaque
// handles; 0 means creation failed.
package main

/*
#include <stdint.h>
*/
import "C"

//export VoiceVoxWrapperNew
func VoiceVoxWrapperNew(dict *C.uint16_t) C.uintptr_t {
	return C.uintptr_t(newWrapper(wideString((*uint16)(dict)), options()...))
}

//export VoiceVoxWrapperInitialize
func VoiceVoxWrapperInitialize(h C.uintptr_t) C.int {
	return C.int(initialize(uintptr(h)))
}

//export VoiceVoxWrapperGenerateVoice
func VoiceVoxWrapperGenerateVoice(h C.uintptr_t, words *C.uint16_t) C.int {
	return C.int(generateVoice(uintptr(h), wideString((*uint16)(words))))
}

//export VoiceVoxWrapperDelete
func VoiceVoxWrapperDelete(h C.uintptr_t) {
	deleteWrapper(uintptr(h))
}

func main() {}

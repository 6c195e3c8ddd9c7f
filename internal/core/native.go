//go:build voicevox && cgo

package core

/*
#cgo LDFLAGS: -lvoicevox_core
#include <stdlib.h>
#include <stdbool.h>
#include <stdint.h>
#include <voicevox_core.h>
*/
import "C"

import (
	"unsafe"
)

type nativeEngine struct{}

// NewNative binds to libvoicevox_core.
func NewNative() (Engine, error) {
	return nativeEngine{}, nil
}

func (nativeEngine) Initialize(opts InitializeOptions) ResultCode {
	o := C.voicevox_make_default_initialize_options()
	o.acceleration_mode = C.VoicevoxAccelerationMode(opts.AccelerationMode)
	o.cpu_num_threads = C.uint16_t(opts.CPUNumThreads)
	o.load_all_models = C.bool(opts.LoadAllModels)

	// voicevox_initialize copies the path before returning.
	dict := C.CString(opts.OpenJTalkDictDir)
	defer C.free(unsafe.Pointer(dict))
	o.open_jtalk_dict_dir = dict

	return ResultCode(C.voicevox_initialize(o))
}

func (nativeEngine) TTS(text string, speakerID uint32, opts TTSOptions) ([]byte, ResultCode) {
	o := C.voicevox_make_default_tts_options()
	o.kana = C.bool(opts.Kana)
	o.enable_interrogative_upspeak = C.bool(opts.EnableInterrogativeUpspeak)

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))

	var (
		size C.uintptr_t
		wav  *C.uint8_t
	)
	code := ResultCode(C.voicevox_tts(ctext, C.uint32_t(speakerID), o, &size, &wav))
	if code != ResultOK {
		return nil, code
	}
	defer C.voicevox_wav_free(wav)

	return C.GoBytes(unsafe.Pointer(wav), C.int(size)), code
}

func (nativeEngine) Finalize() {
	C.voicevox_finalize()
}

package core

import (
	"errors"
	"testing"
)

func TestResultCodeValues(t *testing.T) {
	// Values must match the engine's enumeration exactly
	expected := map[ResultCode]int32{
		ResultOK:                           0,
		ResultNotLoadedOpenJTalkDictError:  1,
		ResultLoadModelError:               2,
		ResultGetSupportedDevicesError:     3,
		ResultGPUSupportError:              4,
		ResultLoadMetasError:               5,
		ResultUninitializedStatusError:     6,
		ResultInvalidSpeakerIDError:        7,
		ResultInvalidModelIndexError:       8,
		ResultInferenceError:               9,
		ResultExtractFullContextLabelError: 10,
		ResultInvalidUTF8InputError:        11,
		ResultParseKanaError:               12,
		ResultInvalidAudioQueryError:       13,
	}

	for code, want := range expected {
		if int32(code) != want {
			t.Errorf("%s = %d, want %d", code, int32(code), want)
		}
	}
}

func TestResultCodeString(t *testing.T) {
	tests := []struct {
		code ResultCode
		want string
	}{
		{ResultOK, "VOICEVOX_RESULT_OK"},
		{ResultLoadModelError, "VOICEVOX_RESULT_LOAD_MODEL_ERROR"},
		{ResultInvalidAudioQueryError, "VOICEVOX_RESULT_INVALID_AUDIO_QUERY_ERROR"},
		{ResultNotInitialized, "VOICEVOX_RESULT_NOT_INITIALIZED"},
		{ResultReleased, "VOICEVOX_RESULT_RELEASED"},
		{ResultCode(99), "VOICEVOX_RESULT_UNKNOWN(99)"},
	}

	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ResultCode(%d).String() = %q, want %q", int32(tt.code), got, tt.want)
		}
	}
}

func TestShimCodesDoNotOverlapEngineCodes(t *testing.T) {
	for _, c := range []ResultCode{ResultNotInitialized, ResultAlreadyInitialized, ResultReleased, ResultEngineUnavailable} {
		if c >= 0 {
			t.Errorf("%s = %d, shim codes must be negative", c, int32(c))
		}
	}
}

func TestCodesCoversAllNames(t *testing.T) {
	codes := Codes()
	if len(codes) != len(resultNames) {
		t.Fatalf("Codes() returned %d codes, want %d", len(codes), len(resultNames))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i] <= codes[i-1] {
			t.Errorf("Codes() not ascending at %d: %d after %d", i, codes[i], codes[i-1])
		}
	}
}

func TestResultCodeErr(t *testing.T) {
	if err := ResultOK.Err(); err != nil {
		t.Errorf("ResultOK.Err() = %v, want nil", err)
	}

	err := ResultInferenceError.Err()
	if err == nil {
		t.Fatal("ResultInferenceError.Err() = nil, want error")
	}
	var re *ResultError
	if !errors.As(err, &re) {
		t.Fatalf("error %T is not *ResultError", err)
	}
	if re.Code != ResultInferenceError {
		t.Errorf("Code = %s, want %s", re.Code, ResultInferenceError)
	}
	if err.Error() != "voicevox: VOICEVOX_RESULT_INFERENCE_ERROR" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestParseAccelerationMode(t *testing.T) {
	tests := []struct {
		in      string
		want    AccelerationMode
		wantErr bool
	}{
		{"", AccelerationAuto, false},
		{"auto", AccelerationAuto, false},
		{"cpu", AccelerationCPU, false},
		{"gpu", AccelerationGPU, false},
		{"tpu", AccelerationAuto, true},
	}

	for _, tt := range tests {
		got, err := ParseAccelerationMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAccelerationMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAccelerationMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	initOpts := DefaultInitializeOptions()
	if initOpts.LoadAllModels {
		t.Error("default LoadAllModels should be false")
	}
	if initOpts.CPUNumThreads != 0 {
		t.Errorf("default CPUNumThreads = %d, want 0", initOpts.CPUNumThreads)
	}
	if initOpts.AccelerationMode != AccelerationAuto {
		t.Errorf("default AccelerationMode = %s, want auto", initOpts.AccelerationMode)
	}

	tts := DefaultTTSOptions()
	if tts.Kana {
		t.Error("default Kana should be false")
	}
	if !tts.EnableInterrogativeUpspeak {
		t.Error("default EnableInterrogativeUpspeak should be true")
	}
}

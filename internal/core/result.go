package core

import "fmt"

// ResultCode is the status returned by every engine entry point.
// Non-negative values come from voicevox_core verbatim; negative values are
// produced by this package's Runtime guards and never by the engine.
type ResultCode int32

const (
	ResultOK                           ResultCode = 0
	ResultNotLoadedOpenJTalkDictError  ResultCode = 1
	ResultLoadModelError               ResultCode = 2
	ResultGetSupportedDevicesError     ResultCode = 3
	ResultGPUSupportError              ResultCode = 4
	ResultLoadMetasError               ResultCode = 5
	ResultUninitializedStatusError     ResultCode = 6
	ResultInvalidSpeakerIDError        ResultCode = 7
	ResultInvalidModelIndexError       ResultCode = 8
	ResultInferenceError               ResultCode = 9
	ResultExtractFullContextLabelError ResultCode = 10
	ResultInvalidUTF8InputError        ResultCode = 11
	ResultParseKanaError               ResultCode = 12
	ResultInvalidAudioQueryError       ResultCode = 13
)

const (
	// ResultNotInitialized is returned for synthesis before a successful Initialize.
	ResultNotInitialized ResultCode = -1
	// ResultAlreadyInitialized is returned when the process engine is already initialized.
	ResultAlreadyInitialized ResultCode = -2
	// ResultReleased is returned for any call on a released lease.
	ResultReleased ResultCode = -3
	// ResultEngineUnavailable is returned when no engine backend could be loaded.
	ResultEngineUnavailable ResultCode = -4
)

var resultNames = map[ResultCode]string{
	ResultOK:                           "VOICEVOX_RESULT_OK",
	ResultNotLoadedOpenJTalkDictError:  "VOICEVOX_RESULT_NOT_LOADED_OPENJTALK_DICT_ERROR",
	ResultLoadModelError:               "VOICEVOX_RESULT_LOAD_MODEL_ERROR",
	ResultGetSupportedDevicesError:     "VOICEVOX_RESULT_GET_SUPPORTED_DEVICES_ERROR",
	ResultGPUSupportError:              "VOICEVOX_RESULT_GPU_SUPPORT_ERROR",
	ResultLoadMetasError:               "VOICEVOX_RESULT_LOAD_METAS_ERROR",
	ResultUninitializedStatusError:     "VOICEVOX_RESULT_UNINITIALIZED_STATUS_ERROR",
	ResultInvalidSpeakerIDError:        "VOICEVOX_RESULT_INVALID_SPEAKER_ID_ERROR",
	ResultInvalidModelIndexError:       "VOICEVOX_RESULT_INVALID_MODEL_INDEX_ERROR",
	ResultInferenceError:               "VOICEVOX_RESULT_INFERENCE_ERROR",
	ResultExtractFullContextLabelError: "VOICEVOX_RESULT_EXTRACT_FULL_CONTEXT_LABEL_ERROR",
	ResultInvalidUTF8InputError:        "VOICEVOX_RESULT_INVALID_UTF8_INPUT_ERROR",
	ResultParseKanaError:               "VOICEVOX_RESULT_PARSE_KANA_ERROR",
	ResultInvalidAudioQueryError:       "VOICEVOX_RESULT_INVALID_AUDIO_QUERY_ERROR",
	ResultNotInitialized:               "VOICEVOX_RESULT_NOT_INITIALIZED",
	ResultAlreadyInitialized:           "VOICEVOX_RESULT_ALREADY_INITIALIZED",
	ResultReleased:                     "VOICEVOX_RESULT_RELEASED",
	ResultEngineUnavailable:            "VOICEVOX_RESULT_ENGINE_UNAVAILABLE",
}

func (c ResultCode) String() string {
	if name, ok := resultNames[c]; ok {
		return name
	}
	return fmt.Sprintf("VOICEVOX_RESULT_UNKNOWN(%d)", int32(c))
}

// OK reports whether c is ResultOK.
func (c ResultCode) OK() bool { return c == ResultOK }

// Err converts c into an error, or nil for ResultOK.
func (c ResultCode) Err() error {
	if c == ResultOK {
		return nil
	}
	return &ResultError{Code: c}
}

// ResultError wraps a non-OK ResultCode for callers that work with errors.
type ResultError struct {
	Code ResultCode
}

func (e *ResultError) Error() string {
	return "voicevox: " + e.Code.String()
}

// Codes returns every known result code in ascending order.
func Codes() []ResultCode {
	return []ResultCode{
		ResultEngineUnavailable,
		ResultReleased,
		ResultAlreadyInitialized,
		ResultNotInitialized,
		ResultOK,
		ResultNotLoadedOpenJTalkDictError,
		ResultLoadModelError,
		ResultGetSupportedDevicesError,
		ResultGPUSupportError,
		ResultLoadMetasError,
		ResultUninitializedStatusError,
		ResultInvalidSpeakerIDError,
		ResultInvalidModelIndexError,
		ResultInferenceError,
		ResultExtractFullContextLabelError,
		ResultInvalidUTF8InputError,
		ResultParseKanaError,
		ResultInvalidAudioQueryError,
	}
}

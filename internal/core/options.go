package core

import "fmt"

// AccelerationMode selects the inference device.
type AccelerationMode int32

const (
	AccelerationAuto AccelerationMode = 0
	AccelerationCPU  AccelerationMode = 1
	AccelerationGPU  AccelerationMode = 2
)

// ParseAccelerationMode accepts "auto", "cpu" or "gpu".
func ParseAccelerationMode(s string) (AccelerationMode, error) {
	switch s {
	case "", "auto":
		return AccelerationAuto, nil
	case "cpu":
		return AccelerationCPU, nil
	case "gpu":
		return AccelerationGPU, nil
	}
	return AccelerationAuto, fmt.Errorf("unknown acceleration mode %q", s)
}

func (m AccelerationMode) String() string {
	switch m {
	case AccelerationCPU:
		return "cpu"
	case AccelerationGPU:
		return "gpu"
	default:
		return "auto"
	}
}

// InitializeOptions mirrors VoicevoxInitializeOptions.
type InitializeOptions struct {
	AccelerationMode AccelerationMode
	CPUNumThreads    uint16 // 0 lets the engine decide
	LoadAllModels    bool
	OpenJTalkDictDir string
}

// DefaultInitializeOptions matches voicevox_make_default_initialize_options.
func DefaultInitializeOptions() InitializeOptions {
	return InitializeOptions{
		AccelerationMode: AccelerationAuto,
		CPUNumThreads:    0,
		LoadAllModels:    false,
	}
}

// TTSOptions mirrors VoicevoxTtsOptions.
type TTSOptions struct {
	Kana                       bool // input is AquesTalk-style kana
	EnableInterrogativeUpspeak bool
}

// DefaultTTSOptions matches voicevox_make_default_tts_options.
func DefaultTTSOptions() TTSOptions {
	return TTSOptions{
		Kana:                       false,
		EnableInterrogativeUpspeak: true,
	}
}

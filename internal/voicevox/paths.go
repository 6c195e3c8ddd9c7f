package voicevox

import (
	"github.com/lukasbauer/voxbridge/internal/exepath"
)

// ExecutablePath returns the absolute path of the running binary.
func (f *Facade) ExecutablePath() (string, error) {
	return exepath.Executable()
}

// ExecutableDir returns the directory paths are resolved against: the base
// directory when one was configured, otherwise the executable's directory.
func (f *Facade) ExecutableDir() string {
	if f.baseDir != "" {
		return f.baseDir
	}
	d, err := exepath.Dir()
	if err != nil {
		f.logger.Printf("voicevox: executable dir: %v", err)
		return "."
	}
	return d
}

// DictionaryPath is the configured dictionary joined onto ExecutableDir.
func (f *Facade) DictionaryPath() string {
	return exepath.Combine(f.ExecutableDir(), f.dict)
}

// OutputWavePath is where GenerateVoice writes its result.
func (f *Facade) OutputWavePath() string {
	return exepath.Combine(f.ExecutableDir(), OutputFileName)
}

package pockettts

import "github.com/bjkemp/pocket-tts/internal/voices"

// DefaultVoice is the voice used by generate_audio when none is given.
const DefaultVoice = voices.Default

// PredefinedVoices returns the voices bundled with the engine.
func PredefinedVoices() []string {
	return voices.Predefined()
}

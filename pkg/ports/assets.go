package ports

import "context"

// AssetResolver maps logical asset names to files.
type AssetResolver interface {
	// AssetPath returns the first match for name along the search path, or a
	// *storyerr.AssetNotFoundError.
	AssetPath(name string) (string, error)

	// BuildPath returns the location for a derived asset in the build directory.
	BuildPath(name string) string
}

// VoiceSynthesizer turns text into a speech audio file.
type VoiceSynthesizer interface {
	// Synthesize writes speech for text in voice to outputPath.
	Synthesize(ctx context.Context, text, voice, outputPath string) error
}

package convert

import (
	"github.com/vodworks/episode2manifest/pkg/manifest"
	"github.com/vodworks/episode2manifest/pkg/mediapackage"
)

// extractTranscriptions converts the transcription segments. A document
// without a segments block yields nil, so the manifest field is omitted.
// A present-but-empty segments block comes out the same way - the two cases
// aren't distinguishable in the manifest.
func extractTranscriptions(episode *mediapackage.Episode) []manifest.Transcription {
	if !episode.HasSegments || len(episode.Segments) == 0 {
		return nil
	}
	transcriptions := make([]manifest.Transcription, 0, len(episode.Segments))
	for _, segment := range episode.Segments {
		transcriptions = append(transcriptions, manifest.Transcription{
			Index:    segment.Index,
			Time:     segment.Time,
			Duration: segment.Duration,
			Text:     segment.Text,
			Preview:  segment.Preview,
		})
	}
	return transcriptions
}

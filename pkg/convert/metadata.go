package convert

import (
	"github.com/vodworks/episode2manifest/pkg/manifest"
	"github.com/vodworks/episode2manifest/pkg/mediapackage"
)

// extractMetadata lifts the episode's descriptive fields into the manifest.
// The document carries the duration in milliseconds, the manifest in seconds.
func extractMetadata(episode *mediapackage.Episode) manifest.Metadata {
	return manifest.Metadata{
		ID:           episode.ID,
		Title:        episode.Title,
		Description:  episode.Description,
		Language:     episode.Language,
		Series:       episode.Series,
		SeriesTitle:  episode.SeriesTitle,
		Rights:       episode.Rights,
		License:      episode.License,
		Created:      episode.Created,
		Presenters:   episode.Creators,
		Contributors: episode.Contributors,
		Duration:     float64(episode.DurationMillis) / 1000,
	}
}

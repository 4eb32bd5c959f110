package convert

import (
	"github.com/vodworks/episode2manifest/pkg/manifest"
)

// mergeStreams groups classified sources into one stream entry per content
// category, in first-occurrence order, and assigns the main audio role to at
// most one of them.
func mergeStreams(sources []ClassifiedSource, mainAudioContent string) []*manifest.Stream {
	mainContent := resolveMainAudioContent(sources, mainAudioContent)
	sources = dropSupersededVariants(sources)

	var streams []*manifest.Stream
	streamsByContent := map[string]*manifest.Stream{}
	for _, source := range sources {
		stream, ok := streamsByContent[source.Content]
		if !ok {
			stream = &manifest.Stream{
				Content: source.Content,
				Sources: map[string][]manifest.Source{},
			}
			if source.Content == mainContent {
				stream.Role = manifest.RoleMainAudio
			}
			streamsByContent[source.Content] = stream
			streams = append(streams, stream)
		}
		stream.Sources[source.StreamType] = append(stream.Sources[source.StreamType], source.Source)
	}
	return streams
}

// resolveMainAudioContent scans the classified sources in order and picks the
// preferred content as soon as it occurs. If it never occurs (or no
// preference is configured), the content of the *last scanned* source wins -
// not the first and not the most common one.
// TODO: Check with the source system's maintainers whether the last-scanned
// fallback is intentional; players currently rely on it, so changing it here
// is not an option.
func resolveMainAudioContent(sources []ClassifiedSource, preferred string) string {
	var last string
	for _, source := range sources {
		last = source.Content
		if preferred != "" && source.Content == preferred {
			return preferred
		}
	}
	return last
}

// dropSupersededVariants removes per-rendition adaptive playlists when a
// master playlist is present: the master already references every rendition.
// Only sources whose descriptor carries a master flag participate, so
// progressive and live sources pass through untouched.
func dropSupersededVariants(sources []ClassifiedSource) []ClassifiedSource {
	hasMaster := false
	for _, source := range sources {
		if source.Source.Master != nil && *source.Source.Master {
			hasMaster = true
			break
		}
	}
	if !hasMaster {
		return sources
	}

	kept := make([]ClassifiedSource, 0, len(sources))
	for _, source := range sources {
		if source.Source.Master != nil && !*source.Source.Master {
			continue
		}
		kept = append(kept, source)
	}
	return kept
}

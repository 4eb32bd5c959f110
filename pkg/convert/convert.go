// Package convert turns one episode document into a flat, player-consumable
// manifest.
//
// The conversion is a single-pass, pure transformation: metadata extraction,
// stream classification and merging, caption extraction, attachment
// processing and transcription extraction all run against the same parsed
// document and write disjoint parts of one manifest. A malformed track,
// caption or attachment only loses that one item, never the whole manifest.
package convert

import (
	"errors"

	"go.uber.org/zap"

	"github.com/vodworks/episode2manifest/pkg/manifest"
	"github.com/vodworks/episode2manifest/pkg/mediapackage"
)

// Translator resolves the human-readable labels of a manifest.
// Implementations must be safe for concurrent read-only use, because multiple
// conversions may run at the same time.
type Translator interface {
	// Translate returns the localized label for one of a small fixed set of
	// keys ("automatically generated", "Undefined caption",
	// "Unknown language").
	Translate(key string) string
	// LanguageName resolves a language code to a display name. ok is false
	// for codes that can't be resolved.
	LanguageName(code string) (name string, ok bool)
}

// Options configures a Converter. The zero value is usable: all fields have
// defaults, except MainAudioContent, whose absence disables the main-audio
// preference.
type Options struct {
	// MainAudioContent is the preferred content category for the main audio
	// role, e.g. "presenter". If empty, or if no classified source carries
	// it, the fallback in mergeStreams applies.
	MainAudioContent string
	// VideoPreviewAttachments is the ordered priority list of attachment
	// types for the full-video preview image.
	VideoPreviewAttachments []string
	// PreviewAttachment is the attachment type of timestamped segment
	// previews ("filmstrip" frames).
	PreviewAttachment string
	// Rules is the ordered stream type rule table. Nil means DefaultRules().
	Rules []StreamTypeRule
}

var DefaultOptions = Options{
	VideoPreviewAttachments: []string{"presenter/player+preview", "presentation/player+preview"},
	PreviewAttachment:       "presentation/segment+preview",
}

// Converter converts episode documents into manifests. It's stateless apart
// from its configuration, so one Converter can be shared across goroutines.
type Converter struct {
	opts       Options
	translator Translator
	logger     *zap.Logger
}

func NewConverter(opts Options, translator Translator, logger *zap.Logger) (*Converter, error) {
	// Precondition check
	if translator == nil {
		return nil, errors.New("translator must not be nil")
	}
	if logger == nil {
		return nil, errors.New("logger must not be nil")
	}

	if opts.VideoPreviewAttachments == nil {
		opts.VideoPreviewAttachments = DefaultOptions.VideoPreviewAttachments
	}
	if opts.PreviewAttachment == "" {
		opts.PreviewAttachment = DefaultOptions.PreviewAttachment
	}
	if opts.Rules == nil {
		opts.Rules = DefaultRules()
	}

	return &Converter{
		opts:       opts,
		translator: translator,
		logger:     logger,
	}, nil
}

// Convert converts a search-results document into a manifest. It returns nil
// if the document doesn't describe exactly one episode. Apart from that there
// is no failure mode: malformed items are skipped and everything else still
// makes it into the manifest.
func (c *Converter) Convert(doc []byte) *manifest.Manifest {
	episode := mediapackage.Parse(doc)
	if episode == nil {
		c.logger.Debug("Document doesn't describe exactly one episode, rejecting")
		return nil
	}
	return c.ConvertEpisode(episode)
}

// ConvertEpisode converts an already parsed episode.
func (c *Converter) ConvertEpisode(episode *mediapackage.Episode) *manifest.Manifest {
	zapFieldEpisode := zap.String("episode", episode.ID)

	result := &manifest.Manifest{
		Metadata: extractMetadata(episode),
	}

	classified := c.classifyTracks(episode.Tracks, zapFieldEpisode)
	result.Streams = mergeStreams(classified, c.opts.MainAudioContent)

	captions, err := extractCaptions(episode, c.translator)
	if err != nil {
		// Per-candidate failures only cost the affected candidate
		c.logger.Debug("Skipped caption candidates", zap.Error(err), zapFieldEpisode)
	}
	result.Captions = captions

	c.processAttachments(episode, result)
	result.Transcriptions = extractTranscriptions(episode)

	c.logger.Debug("Converted episode",
		zap.Int("streams", len(result.Streams)),
		zap.Int("captions", len(result.Captions)),
		zap.Int("frames", len(result.FrameList)),
		zap.Int("transcriptions", len(result.Transcriptions)),
		zapFieldEpisode)
	return result
}

func (c *Converter) classifyTracks(tracks []mediapackage.Track, zapFieldEpisode zap.Field) []ClassifiedSource {
	var classified []ClassifiedSource
	for _, track := range tracks {
		source := Classify(track, c.opts.Rules)
		if source == nil {
			// Not an error - e.g. an unsupported mimetype or a track without
			// a content prefix
			c.logger.Debug("Dropping unclassifiable track",
				zap.String("track", track.ID),
				zap.String("type", track.Type),
				zap.String("mimetype", track.Mimetype),
				zapFieldEpisode)
			continue
		}
		classified = append(classified, *source)
	}
	return classified
}

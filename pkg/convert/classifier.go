package convert

import (
	"strconv"
	"strings"

	"github.com/vodworks/episode2manifest/pkg/manifest"
	"github.com/vodworks/episode2manifest/pkg/mediapackage"
)

// ClassifiedSource is one track that matched a stream type rule: the stream
// type it matched, the content category derived from its flavor, and the
// type-specific source descriptor.
type ClassifiedSource struct {
	StreamType string
	Content    string
	Source     manifest.Source
}

// StreamTypeRule is one entry of the ordered rule table. A rule matches a
// track when it's enabled and all of its conditions hold; the first matching
// rule wins.
type StreamTypeRule struct {
	StreamType    string
	Enabled       bool
	Conditions    TrackConditions
	ExtractSource func(track mediapackage.Track) manifest.Source
}

// TrackConditions is a set of equality conditions over track fields. Nil
// fields don't constrain.
type TrackConditions struct {
	Mimetype *string
	Live     *bool
}

func (tc TrackConditions) match(track mediapackage.Track) bool {
	if tc.Mimetype != nil && *tc.Mimetype != track.Mimetype {
		return false
	}
	if tc.Live != nil && *tc.Live != track.Live {
		return false
	}
	return true
}

// DefaultRules returns the built-in rule table: progressive mp4, on-demand
// HLS and live HLS. Callers can extend or replace the table via
// Options.Rules; new stream types only need a new rule, not new control flow.
func DefaultRules() []StreamTypeRule {
	return []StreamTypeRule{
		{
			StreamType:    "mp4",
			Enabled:       true,
			Conditions:    TrackConditions{Mimetype: strPtr("video/mp4")},
			ExtractSource: progressiveSource,
		},
		{
			StreamType:    "hls",
			Enabled:       true,
			Conditions:    TrackConditions{Mimetype: strPtr("application/x-mpegURL"), Live: boolPtr(false)},
			ExtractSource: adaptiveSource,
		},
		{
			StreamType:    "hlsLive",
			Enabled:       true,
			Conditions:    TrackConditions{Mimetype: strPtr("application/x-mpegURL"), Live: boolPtr(true)},
			ExtractSource: liveSource,
		},
	}
}

// Classify matches a track against the ordered rule table. It returns nil for
// tracks that no enabled rule matches and for tracks without a content prefix
// in their flavor - those are intentionally ignored, not errors.
func Classify(track mediapackage.Track, rules []StreamTypeRule) *ClassifiedSource {
	content := contentCategory(track.Type)
	if content == "" {
		return nil
	}
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		if !rule.Conditions.match(track) {
			continue
		}
		return &ClassifiedSource{
			StreamType: rule.StreamType,
			Content:    content,
			Source:     rule.ExtractSource(track),
		}
	}
	return nil
}

// contentCategory returns the part of a flavor before its first "/", e.g.
// "presenter" for "presenter/delivery". Empty if the flavor has no prefix.
func contentCategory(flavor string) string {
	slash := strings.Index(flavor, "/")
	if slash <= 0 {
		return ""
	}
	return flavor[:slash]
}

func progressiveSource(track mediapackage.Track) manifest.Source {
	width, height := parseResolution(track.Resolution)
	return manifest.Source{
		Src:      track.URL,
		Mimetype: track.Mimetype,
		Res:      &manifest.Resolution{W: width, H: height},
	}
}

func adaptiveSource(track mediapackage.Track) manifest.Source {
	master := track.Master
	return manifest.Source{
		Src:      track.URL,
		Mimetype: track.Mimetype,
		Master:   &master,
	}
}

func liveSource(track mediapackage.Track) manifest.Source {
	return manifest.Source{
		Src:      track.URL,
		Mimetype: track.Mimetype,
	}
}

// parseResolution parses a "WxH" string. Absent or unparsable resolutions
// fall back to 1x1 so that players always get *some* aspect ratio.
func parseResolution(resolution string) (int, int) {
	parts := strings.SplitN(resolution, "x", 2)
	if len(parts) != 2 {
		return 1, 1
	}
	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || width <= 0 {
		return 1, 1
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || height <= 0 {
		return 1, 1
	}
	return width, height
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

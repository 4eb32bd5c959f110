// Package mediapackage parses episode documents as they come out of the
// source system's XML API.
//
// The XML→JSON conversion of that API collapses repeated elements: an element
// that occurs once becomes a bare object, only two or more occurrences become
// an array. Every repeatable field must therefore be normalized at its access
// point - normalizing only the document root is not enough, because the
// ambiguity occurs independently at every level of nesting.
package mediapackage

import (
	"github.com/tidwall/gjson"
)

// Episode is one episode record: a recorded event with its media tracks,
// attachments and transcription segments.
type Episode struct {
	ID           string
	Title        string
	Description  string
	Language     string
	Series       string
	SeriesTitle  string
	Rights       string
	License      string
	Created      string
	Creators     []string
	Contributors []string
	// DurationMillis is the episode duration in milliseconds, as delivered.
	DurationMillis int64
	Tracks         []Track
	Attachments    []Attachment
	Segments       []Segment
	// HasSegments reports whether the document contained a segments block at
	// all, as opposed to a present-but-empty one.
	HasSegments bool
}

// Track is one playable media asset.
type Track struct {
	ID       string
	Type     string
	URL      string
	Mimetype string
	// Resolution is the raw "WxH" string, empty if the track has none.
	Resolution string
	Live       bool
	Master     bool
	Tags       []string
}

// Attachment is one non-playable asset, e.g. a preview image or a caption
// file.
type Attachment struct {
	ID       string
	Type     string
	URL      string
	Mimetype string
	// Ref is the attachment's reference string. For segment previews it
	// embeds a timestamp of the form "time=T<HH>:<MM>:<SS>".
	Ref  string
	Tags []string
}

// Segment is one transcription unit.
type Segment struct {
	Index    int
	Time     int64
	Duration int64
	Text     string
	// Preview is the text payload of the segment's first preview reference,
	// empty if there is none.
	Preview string
}

// Parse extracts the single episode from a search-results document.
// It returns nil if the document doesn't describe exactly one episode
// (total != 1 or a malformed wrapper) - that's a rejected document, not an
// error.
func Parse(doc []byte) *Episode {
	searchResults := gjson.GetBytes(doc, "search-results")
	if !searchResults.Exists() {
		return nil
	}
	if searchResults.Get("total").Int() != 1 {
		return nil
	}
	results := repeated(searchResults.Get("result"))
	if len(results) != 1 {
		return nil
	}
	return parseEpisode(results[0])
}

func parseEpisode(result gjson.Result) *Episode {
	meta := result.Get("metadata")
	episode := &Episode{
		ID:             result.Get("id").String(),
		Title:          meta.Get("title").String(),
		Description:    meta.Get("description").String(),
		Language:       meta.Get("language").String(),
		Series:         meta.Get("series").String(),
		SeriesTitle:    meta.Get("seriestitle").String(),
		Rights:         meta.Get("rights").String(),
		License:        meta.Get("license").String(),
		Created:        meta.Get("created").String(),
		Creators:       textValues(meta.Get("creators.creator")),
		Contributors:   textValues(meta.Get("contributors.contributor")),
		DurationMillis: meta.Get("duration").Int(),
	}

	for _, track := range repeated(result.Get("media.track")) {
		episode.Tracks = append(episode.Tracks, Track{
			ID:         track.Get("id").String(),
			Type:       track.Get("type").String(),
			URL:        track.Get("url").String(),
			Mimetype:   track.Get("mimetype").String(),
			Resolution: track.Get("video.resolution").String(),
			Live:       track.Get("live").Bool(),
			Master:     track.Get("master").Bool(),
			Tags:       textValues(track.Get("tags.tag")),
		})
	}

	for _, attachment := range repeated(result.Get("attachments.attachment")) {
		episode.Attachments = append(episode.Attachments, Attachment{
			ID:       attachment.Get("id").String(),
			Type:     attachment.Get("type").String(),
			URL:      attachment.Get("url").String(),
			Mimetype: attachment.Get("mimetype").String(),
			Ref:      attachment.Get("ref").String(),
			Tags:     textValues(attachment.Get("tags.tag")),
		})
	}

	segments := result.Get("segments")
	episode.HasSegments = segments.Exists()
	for _, segment := range repeated(segments.Get("segment")) {
		parsed := Segment{
			Index:    int(segment.Get("index").Int()),
			Time:     segment.Get("time").Int(),
			Duration: segment.Get("duration").Int(),
			Text:     segment.Get("text").String(),
		}
		if previews := repeated(segment.Get("previews.preview")); len(previews) > 0 {
			parsed.Preview = textValue(previews[0])
		}
		episode.Segments = append(episode.Segments, parsed)
	}

	return episode
}

// repeated normalizes a repeatable field: absent → empty, bare object or
// scalar (the collapsed single-occurrence case) → one element, array →
// itself. Every repeatable access must go through this, never through the
// raw result.
func repeated(result gjson.Result) []gjson.Result {
	if !result.Exists() {
		return nil
	}
	return result.Array()
}

// textValue returns the text payload of an element. Elements that carried XML
// attributes come out of the conversion as objects with their text under "$".
func textValue(result gjson.Result) string {
	if result.IsObject() {
		return result.Get("$").String()
	}
	return result.String()
}

func textValues(result gjson.Result) []string {
	elements := repeated(result)
	if len(elements) == 0 {
		return nil
	}
	values := make([]string, 0, len(elements))
	for _, element := range elements {
		values = append(values, textValue(element))
	}
	return values
}

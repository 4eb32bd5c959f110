package convert

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/multierr"

	"github.com/vodworks/episode2manifest/pkg/manifest"
	"github.com/vodworks/episode2manifest/pkg/mediapackage"
)

// Legacy caption flavor convention: "captions/<subtype>[+<lang>]", e.g.
// "captions/vtt+en" or "captions/dfxp".
var captionFlavor = regexp.MustCompile(`^captions/([^+/]+)(?:\+(.+))?$`)

// Tag conventions that override what the flavor encodes.
const (
	tagLangPrefix       = "lang:"
	tagAutoGenerated    = "generator-type:auto"
	tagClosedCaption    = "type:closed-caption"
	closedCaptionMarker = "[CC] "
)

// captionCandidate is the common shape of the two places captions can be
// delivered in: attachments and tracks.
type captionCandidate struct {
	ID   string
	Type string
	URL  string
	Tags []string
}

// extractCaptions scans both attachments and tracks for legacy flavor-encoded
// captions. Candidates that aren't captions are skipped silently; candidates
// that are but can't be parsed are skipped too, with their errors combined
// into the returned error. The returned slice is always usable - a bad
// candidate never aborts the batch.
func extractCaptions(episode *mediapackage.Episode, translator Translator) ([]manifest.Caption, error) {
	var candidates []captionCandidate
	for _, attachment := range episode.Attachments {
		candidates = append(candidates, captionCandidate{
			ID:   attachment.ID,
			Type: attachment.Type,
			URL:  attachment.URL,
			Tags: attachment.Tags,
		})
	}
	for _, track := range episode.Tracks {
		candidates = append(candidates, captionCandidate{
			ID:   track.ID,
			Type: track.Type,
			URL:  track.URL,
			Tags: track.Tags,
		})
	}

	captions := []manifest.Caption{}
	var combinedErr error
	for i, candidate := range candidates {
		caption, err := parseCaption(candidate, i, translator)
		if err != nil {
			combinedErr = multierr.Append(combinedErr, err)
			continue
		}
		if caption == nil {
			continue
		}
		captions = append(captions, *caption)
	}
	return captions, combinedErr
}

// parseCaption returns (nil, nil) for candidates whose flavor doesn't follow
// the caption convention and an error for ones that do but are unusable.
func parseCaption(candidate captionCandidate, index int, translator Translator) (*manifest.Caption, error) {
	match := captionFlavor.FindStringSubmatch(candidate.Type)
	if match == nil {
		return nil, nil
	}
	subtype := match[1]
	lang := match[2]

	if candidate.URL == "" {
		return nil, fmt.Errorf("Caption candidate %v (%v) has no URL", index, candidate.Type)
	}

	// Tag overrides take precedence over what the flavor encodes
	closedCaption := false
	autoGenerated := false
	for _, tag := range candidate.Tags {
		switch {
		case strings.HasPrefix(tag, tagLangPrefix):
			lang = strings.TrimPrefix(tag, tagLangPrefix)
		case tag == tagAutoGenerated:
			autoGenerated = true
		case tag == tagClosedCaption:
			closedCaption = true
		}
	}

	// The legacy "dfxp" subtype ships with an ".xml" extension, but players
	// need to know it's DFXP
	format := fileExtension(candidate.URL)
	if subtype == "dfxp" && format == "xml" {
		format = "dfxp"
	}

	var text string
	if lang == "" {
		text = translator.Translate("Undefined caption")
	} else if name, ok := translator.LanguageName(lang); ok {
		text = name
	} else {
		text = translator.Translate("Unknown language")
	}
	if autoGenerated {
		text += " (" + translator.Translate("automatically generated") + ")"
	}
	if closedCaption {
		text = closedCaptionMarker + text
	}

	id := candidate.ID
	if id == "" {
		id = fmt.Sprintf("caption-%v", index)
	}

	return &manifest.Caption{
		ID:     id,
		Lang:   lang,
		Text:   text,
		URL:    candidate.URL,
		Format: format,
	}, nil
}

// fileExtension returns the extension of a URL's path, without the dot and
// without query or fragment.
func fileExtension(url string) string {
	if cut := strings.IndexAny(url, "?#"); cut != -1 {
		url = url[:cut]
	}
	dot := strings.LastIndex(url, ".")
	slash := strings.LastIndex(url, "/")
	if dot == -1 || dot < slash {
		return ""
	}
	return url[dot+1:]
}

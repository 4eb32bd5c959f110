package convert

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vodworks/episode2manifest/pkg/manifest"
	"github.com/vodworks/episode2manifest/pkg/mediapackage"
)

// Timestamp embedded in a segment preview's ref, e.g.
// "track:track-7;time=T00:05:30:0F1000".
var frameTimestamp = regexp.MustCompile(`time=T(\d+):(\d+):(\d+)`)

// Suffix that marks an attachment as a full-video preview image when none of
// the configured priority types is present.
const playerPreviewSuffix = "player+preview"

// processAttachments extracts the timestamped preview-frame filmstrip and the
// representative full-video preview image. Frames keep input order; callers
// that need time order must sort. Both results are independent - finding
// frames doesn't prevent a video preview and vice versa.
func (c *Converter) processAttachments(episode *mediapackage.Episode, result *manifest.Manifest) {
	var previewCandidates []mediapackage.Attachment
	for _, attachment := range episode.Attachments {
		if attachment.Type != c.opts.PreviewAttachment {
			previewCandidates = append(previewCandidates, attachment)
			continue
		}
		frame, ok := frameFromAttachment(attachment)
		if !ok {
			// A segment preview without a parsable timestamp contributes
			// nothing
			c.logger.Debug("Dropping segment preview without timestamp",
				zap.String("attachment", attachment.ID),
				zap.String("ref", attachment.Ref))
			continue
		}
		result.FrameList = append(result.FrameList, frame)
	}

	result.Metadata.Preview = VideoPreviewURL(previewCandidates, c.opts.VideoPreviewAttachments)
}

func frameFromAttachment(attachment mediapackage.Attachment) (manifest.Frame, bool) {
	match := frameTimestamp.FindStringSubmatch(attachment.Ref)
	if match == nil {
		return manifest.Frame{}, false
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	time := hours*3600 + minutes*60 + seconds
	return manifest.Frame{
		ID:       "frame_" + strconv.Itoa(time),
		Time:     time,
		URL:      attachment.URL,
		Thumb:    attachment.URL,
		Mimetype: attachment.Mimetype,
	}, true
}

// VideoPreviewURL resolves the representative full-video preview image from a
// list of attachments: the first attachment whose type exactly matches one of
// the priority types (checked in priority order), otherwise the first
// attachment whose type ends in "player+preview". Empty if neither exists.
//
// It's exported on its own because some callers only need the preview image,
// not a full conversion.
func VideoPreviewURL(attachments []mediapackage.Attachment, priorities []string) string {
	for _, priority := range priorities {
		for _, attachment := range attachments {
			if attachment.Type == priority {
				return attachment.URL
			}
		}
	}
	for _, attachment := range attachments {
		if strings.HasSuffix(attachment.Type, playerPreviewSuffix) {
			return attachment.URL
		}
	}
	return ""
}

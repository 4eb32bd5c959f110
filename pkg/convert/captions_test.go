package convert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vodworks/episode2manifest/pkg/mediapackage"
)

// stubTranslator returns labels verbatim and only knows a handful of
// languages, so tests don't depend on real display-name data.
type stubTranslator struct{}

func (stubTranslator) Translate(key string) string {
	return key
}

func (stubTranslator) LanguageName(code string) (string, bool) {
	names := map[string]string{
		"en": "English",
		"de": "German",
	}
	name, ok := names[code]
	return name, ok
}

func TestExtractCaptionsFromAttachment(t *testing.T) {
	episode := &mediapackage.Episode{
		Attachments: []mediapackage.Attachment{
			{
				ID:   "att-1",
				Type: "captions/vtt+en",
				URL:  "http://example.com/captions.vtt",
			},
		},
	}
	captions, err := extractCaptions(episode, stubTranslator{})
	require.NoError(t, err)
	require.Len(t, captions, 1)
	require.Equal(t, "att-1", captions[0].ID)
	require.Equal(t, "en", captions[0].Lang)
	require.Equal(t, "English", captions[0].Text)
	require.Equal(t, "vtt", captions[0].Format)
	require.Equal(t, "http://example.com/captions.vtt", captions[0].URL)
}

// Captions may be delivered as tracks too.
func TestExtractCaptionsFromTrack(t *testing.T) {
	episode := &mediapackage.Episode{
		Tracks: []mediapackage.Track{
			{
				ID:   "track-9",
				Type: "captions/vtt+de",
				URL:  "http://example.com/captions-de.vtt",
			},
		},
	}
	captions, err := extractCaptions(episode, stubTranslator{})
	require.NoError(t, err)
	require.Len(t, captions, 1)
	require.Equal(t, "de", captions[0].Lang)
	require.Equal(t, "German", captions[0].Text)
}

// The legacy "dfxp" subtype forces the format even though the file extension
// says "xml".
func TestExtractCaptionsLegacyDfxp(t *testing.T) {
	episode := &mediapackage.Episode{
		Attachments: []mediapackage.Attachment{
			{
				ID:   "att-1",
				Type: "captions/dfxp",
				URL:  "http://example.com/captions.xml",
			},
		},
	}
	captions, err := extractCaptions(episode, stubTranslator{})
	require.NoError(t, err)
	require.Len(t, captions, 1)
	require.Equal(t, "dfxp", captions[0].Format)
	require.Empty(t, captions[0].Lang)
	require.Equal(t, "Undefined caption", captions[0].Text)
}

func TestExtractCaptionsTagOverrides(t *testing.T) {
	episode := &mediapackage.Episode{
		Attachments: []mediapackage.Attachment{
			{
				ID:   "att-1",
				Type: "captions/vtt+en",
				URL:  "http://example.com/captions.vtt",
				Tags: []string{"lang:de", "generator-type:auto", "type:closed-caption"},
			},
		},
	}
	captions, err := extractCaptions(episode, stubTranslator{})
	require.NoError(t, err)
	require.Len(t, captions, 1)
	// The lang tag wins over the flavor-embedded language
	require.Equal(t, "de", captions[0].Lang)
	require.Equal(t, "[CC] German (automatically generated)", captions[0].Text)
}

func TestExtractCaptionsUnknownLanguage(t *testing.T) {
	episode := &mediapackage.Episode{
		Attachments: []mediapackage.Attachment{
			{
				ID:   "att-1",
				Type: "captions/vtt+zz",
				URL:  "http://example.com/captions.vtt",
			},
		},
	}
	captions, err := extractCaptions(episode, stubTranslator{})
	require.NoError(t, err)
	require.Len(t, captions, 1)
	require.Equal(t, "zz", captions[0].Lang)
	require.Equal(t, "Unknown language", captions[0].Text)
}

// A bad candidate only loses itself, never the batch.
func TestExtractCaptionsFailureIsolation(t *testing.T) {
	episode := &mediapackage.Episode{
		Attachments: []mediapackage.Attachment{
			{
				ID:   "att-1",
				Type: "captions/vtt+en",
				// No URL, unusable
			},
			{
				ID:   "att-2",
				Type: "captions/vtt+de",
				URL:  "http://example.com/captions-de.vtt",
			},
		},
	}
	captions, err := extractCaptions(episode, stubTranslator{})
	require.Error(t, err)
	require.Len(t, captions, 1)
	require.Equal(t, "att-2", captions[0].ID)
}

func TestExtractCaptionsSkipsNonCaptions(t *testing.T) {
	episode := &mediapackage.Episode{
		Attachments: []mediapackage.Attachment{
			{ID: "att-1", Type: "presenter/player+preview", URL: "http://example.com/p.png"},
		},
		Tracks: []mediapackage.Track{
			{ID: "track-1", Type: "presenter/delivery", URL: "http://example.com/a.mp4"},
		},
	}
	captions, err := extractCaptions(episode, stubTranslator{})
	require.NoError(t, err)
	require.Empty(t, captions)
}

func TestFileExtension(t *testing.T) {
	tests := []struct {
		url string
		ext string
	}{
		{"http://example.com/captions.vtt", "vtt"},
		{"http://example.com/captions.xml?token=abc", "xml"},
		{"http://example.com/captions.srt#fragment", "srt"},
		{"http://example.com/captions", ""},
		{"http://example.com/dir.d/captions", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.ext, fileExtension(tt.url), tt.url)
	}
}

package mediapackage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseRejectsNonSingleEpisodes(t *testing.T) {
	docs := map[string]string{
		"empty":                 `{"search-results": {"total": 0}}`,
		"two episodes":          `{"search-results": {"total": 2, "result": [{"id": "a"}, {"id": "b"}]}}`,
		"no wrapper":            `{"foo": "bar"}`,
		"total/result mismatch": `{"search-results": {"total": 1, "result": [{"id": "a"}, {"id": "b"}]}}`,
	}
	for name, doc := range docs {
		require.Nil(t, Parse([]byte(doc)), name)
	}
}

func TestParseSingleEpisode(t *testing.T) {
	doc := `{
		"search-results": {
			"total": 1,
			"result": {
				"id": "episode-1",
				"metadata": {
					"title": "Intro to Signals",
					"description": "First lecture",
					"language": "en",
					"series": "series-9",
					"seriestitle": "Signals and Systems",
					"rights": "All rights reserved",
					"license": "CC-BY",
					"created": "2023-10-02T08:00:00Z",
					"duration": 120000,
					"creators": {"creator": "Ada Lovelace"},
					"contributors": {"contributor": ["Grace Hopper", "Alan Turing"]}
				},
				"media": {
					"track": {
						"id": "track-1",
						"type": "presenter/delivery",
						"url": "http://example.com/presenter.mp4",
						"mimetype": "video/mp4",
						"video": {"resolution": "1280x720"},
						"tags": {"tag": "engage-download"}
					}
				},
				"attachments": {
					"attachment": [
						{
							"id": "att-1",
							"type": "presentation/segment+preview",
							"url": "http://example.com/frame1.jpg",
							"mimetype": "image/jpeg",
							"ref": "track:track-1;time=T00:00:05:0F1000"
						},
						{
							"id": "att-2",
							"type": "presenter/player+preview",
							"url": "http://example.com/preview.png",
							"mimetype": "image/png"
						}
					]
				},
				"segments": {
					"segment": {
						"index": 0,
						"time": 0,
						"duration": 5000,
						"text": "Welcome everybody",
						"previews": {"preview": {"$": "http://example.com/frame1.jpg", "ref": "att-1"}}
					}
				}
			}
		}
	}`

	episode := Parse([]byte(doc))
	require.NotNil(t, episode)

	expected := &Episode{
		ID:             "episode-1",
		Title:          "Intro to Signals",
		Description:    "First lecture",
		Language:       "en",
		Series:         "series-9",
		SeriesTitle:    "Signals and Systems",
		Rights:         "All rights reserved",
		License:        "CC-BY",
		Created:        "2023-10-02T08:00:00Z",
		Creators:       []string{"Ada Lovelace"},
		Contributors:   []string{"Grace Hopper", "Alan Turing"},
		DurationMillis: 120000,
		Tracks: []Track{
			{
				ID:         "track-1",
				Type:       "presenter/delivery",
				URL:        "http://example.com/presenter.mp4",
				Mimetype:   "video/mp4",
				Resolution: "1280x720",
				Tags:       []string{"engage-download"},
			},
		},
		Attachments: []Attachment{
			{
				ID:       "att-1",
				Type:     "presentation/segment+preview",
				URL:      "http://example.com/frame1.jpg",
				Mimetype: "image/jpeg",
				Ref:      "track:track-1;time=T00:00:05:0F1000",
			},
			{
				ID:       "att-2",
				Type:     "presenter/player+preview",
				URL:      "http://example.com/preview.png",
				Mimetype: "image/png",
			},
		},
		Segments: []Segment{
			{
				Index:    0,
				Time:     0,
				Duration: 5000,
				Text:     "Welcome everybody",
				Preview:  "http://example.com/frame1.jpg",
			},
		},
		HasSegments: true,
	}
	if diff := cmp.Diff(expected, episode); diff != "" {
		t.Fatalf("Parsed episode mismatch (-want +got):\n%s", diff)
	}
}

// A field that occurs once comes out of the XML→JSON conversion as a bare
// object, the same field as a one-element array must parse identically.
func TestParseScalarOrArrayEquivalence(t *testing.T) {
	scalar := `{
		"search-results": {
			"total": 1,
			"result": {
				"id": "episode-1",
				"metadata": {"creators": {"creator": "Ada Lovelace"}},
				"media": {"track": {"id": "track-1", "type": "presenter/delivery", "url": "http://example.com/a.mp4", "mimetype": "video/mp4", "tags": {"tag": "engage"}}}
			}
		}
	}`
	array := `{
		"search-results": {
			"total": 1,
			"result": {
				"id": "episode-1",
				"metadata": {"creators": {"creator": ["Ada Lovelace"]}},
				"media": {"track": [{"id": "track-1", "type": "presenter/delivery", "url": "http://example.com/a.mp4", "mimetype": "video/mp4", "tags": {"tag": ["engage"]}}]}
			}
		}
	}`

	fromScalar := Parse([]byte(scalar))
	fromArray := Parse([]byte(array))
	require.NotNil(t, fromScalar)
	require.NotNil(t, fromArray)
	if diff := cmp.Diff(fromScalar, fromArray); diff != "" {
		t.Fatalf("Scalar and one-element array parses differ (-scalar +array):\n%s", diff)
	}
}

func TestParseEmptySegmentsBlock(t *testing.T) {
	withBlock := `{"search-results": {"total": 1, "result": {"id": "a", "segments": {}}}}`
	withoutBlock := `{"search-results": {"total": 1, "result": {"id": "a"}}}`

	episode := Parse([]byte(withBlock))
	require.NotNil(t, episode)
	require.True(t, episode.HasSegments)
	require.Empty(t, episode.Segments)

	episode = Parse([]byte(withoutBlock))
	require.NotNil(t, episode)
	require.False(t, episode.HasSegments)
}

func TestParseLiveAndMasterFlags(t *testing.T) {
	doc := `{
		"search-results": {
			"total": 1,
			"result": {
				"id": "episode-1",
				"media": {
					"track": [
						{"id": "t1", "type": "presenter/delivery", "url": "http://example.com/live.m3u8", "mimetype": "application/x-mpegURL", "live": true},
						{"id": "t2", "type": "presenter/delivery", "url": "http://example.com/master.m3u8", "mimetype": "application/x-mpegURL", "master": true}
					]
				}
			}
		}
	}`
	episode := Parse([]byte(doc))
	require.NotNil(t, episode)
	require.Len(t, episode.Tracks, 2)
	require.True(t, episode.Tracks[0].Live)
	require.False(t, episode.Tracks[0].Master)
	require.False(t, episode.Tracks[1].Live)
	require.True(t, episode.Tracks[1].Master)
}

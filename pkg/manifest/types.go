package manifest

// Manifest is the flat, player-consumable representation of one episode.
// It's constructed fresh per conversion and never patched afterwards - a
// changed episode document leads to a new manifest.
type Manifest struct {
	Metadata Metadata  `json:"metadata"`
	Streams  []*Stream `json:"streams"`
	Captions []Caption `json:"captions"`
	// FrameList contains the timestamped preview frames ("filmstrip"), in
	// input order. Callers that need them sorted by time must sort themselves.
	FrameList      []Frame         `json:"frameList,omitempty"`
	Transcriptions []Transcription `json:"transcriptions,omitempty"`
}

// Metadata contains the flattened descriptive fields of the episode,
// including a back-reference to the original episode via ID.
type Metadata struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Language     string   `json:"language,omitempty"`
	Series       string   `json:"series,omitempty"`
	SeriesTitle  string   `json:"seriesTitle,omitempty"`
	Rights       string   `json:"rights,omitempty"`
	License      string   `json:"license,omitempty"`
	Created      string   `json:"created,omitempty"`
	Presenters   []string `json:"presenters,omitempty"`
	Contributors []string `json:"contributors,omitempty"`
	// Duration is in seconds. The episode document carries milliseconds.
	Duration float64 `json:"duration"`
	// Preview is the URL of the representative full-video preview image.
	Preview string `json:"preview,omitempty"`
}

// RoleMainAudio marks the single stream entry that carries the primary audio.
const RoleMainAudio = "mainAudio"

// Stream is one playback stream per content category. At most one stream of a
// manifest carries RoleMainAudio.
type Stream struct {
	Content string `json:"content"`
	Role    string `json:"role,omitempty"`
	// Sources maps a stream type (e.g. "mp4", "hls") to its source
	// descriptors. Multiple descriptors of the same type accumulate, e.g.
	// several mp4 resolutions.
	Sources map[string][]Source `json:"sources"`
}

// Source is a type-specific source descriptor. Res is only set for
// progressive sources, Master only for on-demand adaptive ones.
type Source struct {
	Src      string      `json:"src"`
	Mimetype string      `json:"mimetype"`
	Res      *Resolution `json:"res,omitempty"`
	Master   *bool       `json:"master,omitempty"`
}

type Resolution struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Caption is one caption track. Text is the human-readable label, already
// localized and decorated with closed-caption/auto-generated markers.
type Caption struct {
	ID     string `json:"id"`
	Lang   string `json:"lang"`
	Text   string `json:"text"`
	URL    string `json:"url"`
	Format string `json:"format"`
}

// Frame is one timestamped preview frame of the filmstrip.
type Frame struct {
	ID       string `json:"id"`
	Time     int    `json:"time"`
	URL      string `json:"url"`
	Thumb    string `json:"thumb"`
	Mimetype string `json:"mimetype"`
}

// Transcription is one transcription segment.
type Transcription struct {
	Index    int    `json:"index"`
	Time     int64  `json:"time"`
	Duration int64  `json:"duration"`
	Text     string `json:"text"`
	Preview  string `json:"preview,omitempty"`
}

package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vodworks/episode2manifest/pkg/convert"
)

type config struct {
	BindAddr                string   `json:"bindAddr"`
	Port                    int      `json:"port"`
	LogLevel                string   `json:"logLevel"`
	LogEncoding             string   `json:"logEncoding"`
	MainAudioContent        string   `json:"mainAudioContent"`
	VideoPreviewAttachments []string `json:"videoPreviewAttachments"`
	PreviewAttachment       string   `json:"previewAttachment"`
	InputPath               string   `json:"inputPath"`
	EnvPrefix               string   `json:"envPrefix"`
}

func parseConfig(logger *zap.Logger) config {
	result := config{}

	// Flags
	var (
		bindAddr                = flag.String("bindAddr", "localhost", `Local interface address to bind to. "localhost" only allows access from the local host. "0.0.0.0" binds to all network interfaces.`)
		port                    = flag.Int("port", 8080, "Port to listen on")
		logLevel                = flag.String("logLevel", "debug", `Log level to show only logs with the given and more severe levels. Can be "debug", "info", "warn", "error".`)
		logEncoding             = flag.String("logEncoding", "console", `Log encoding. Can be "console" or "json", where "json" makes more sense when using centralized logging solutions like ELK, Graylog or Loki.`)
		mainAudioContent        = flag.String("mainAudioContent", "", `Preferred content category for the main audio role, e.g. "presenter". Keep empty to let the fallback decide.`)
		videoPreviewAttachments = flag.String("videoPreviewAttachments", "", `Ordered priority list of attachment types for the full-video preview image, separated by comma characters (","). Keep empty for the built-in defaults.`)
		previewAttachment       = flag.String("previewAttachment", convert.DefaultOptions.PreviewAttachment, "Attachment type of timestamped segment previews")
		inputPath               = flag.String("inputPath", "", "Path to a search-results JSON file. If set, the file is converted to a manifest on stdout and no server is started.")
		envPrefix               = flag.String("envPrefix", "", "Prefix for environment variables")
	)

	flag.Parse()

	if *envPrefix != "" && !strings.HasSuffix(*envPrefix, "_") {
		*envPrefix += "_"
	}
	result.EnvPrefix = *envPrefix

	// Only overwrite the values by their env var counterparts that have not been set (and that *are* set via env var).
	var err error
	if !isArgSet("bindAddr") {
		if val, ok := os.LookupEnv(*envPrefix + "BIND_ADDR"); ok {
			*bindAddr = val
		}
	}
	result.BindAddr = *bindAddr

	if !isArgSet("port") {
		if val, ok := os.LookupEnv(*envPrefix + "PORT"); ok {
			if *port, err = strconv.Atoi(val); err != nil {
				logger.Fatal("Couldn't convert environment variable from string to int", zap.Error(err), zap.String("envVar", "PORT"))
			}
		}
	}
	result.Port = *port

	if !isArgSet("logLevel") {
		if val, ok := os.LookupEnv(*envPrefix + "LOG_LEVEL"); ok {
			*logLevel = val
		}
	}
	result.LogLevel = *logLevel

	if !isArgSet("logEncoding") {
		if val, ok := os.LookupEnv(*envPrefix + "LOG_ENCODING"); ok {
			*logEncoding = val
		}
	}
	result.LogEncoding = *logEncoding

	if !isArgSet("mainAudioContent") {
		if val, ok := os.LookupEnv(*envPrefix + "MAIN_AUDIO_CONTENT"); ok {
			*mainAudioContent = val
		}
	}
	result.MainAudioContent = *mainAudioContent

	if !isArgSet("videoPreviewAttachments") {
		if val, ok := os.LookupEnv(*envPrefix + "VIDEO_PREVIEW_ATTACHMENTS"); ok {
			*videoPreviewAttachments = val
		}
	}
	if *videoPreviewAttachments != "" {
		attachmentTypes := strings.Split(*videoPreviewAttachments, ",")
		for _, attachmentType := range attachmentTypes {
			attachmentType = strings.TrimSpace(attachmentType)
			if attachmentType != "" {
				result.VideoPreviewAttachments = append(result.VideoPreviewAttachments, attachmentType)
			}
		}
	}

	if !isArgSet("previewAttachment") {
		if val, ok := os.LookupEnv(*envPrefix + "PREVIEW_ATTACHMENT"); ok {
			*previewAttachment = val
		}
	}
	result.PreviewAttachment = *previewAttachment

	if !isArgSet("inputPath") {
		if val, ok := os.LookupEnv(*envPrefix + "INPUT_PATH"); ok {
			*inputPath = val
		}
	}
	result.InputPath = *inputPath

	return result
}

func (c *config) validate(logger *zap.Logger) {
	if c.Port < 1 || c.Port > 65535 {
		logger.Fatal("port must be between 1 and 65535", zap.Int("port", c.Port))
	}

	if c.LogEncoding != "console" && c.LogEncoding != "json" {
		logger.Fatal(`logEncoding must be one of "console" or "json"`, zap.String("logEncoding", c.LogEncoding))
	}
}

// isArgSet returns true if the argument you're looking for is actually set as command line argument.
// Pass without "-" prefix.
func isArgSet(arg string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == arg {
			found = true
		}
	})
	return found
}

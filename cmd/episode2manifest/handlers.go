package main

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vodworks/episode2manifest/pkg/convert"
	"github.com/vodworks/episode2manifest/pkg/mediapackage"
)

func healthHandler(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// createConvertHandler creates the handler for the full conversion: the
// request body is a search-results document, the response the manifest.
// Documents that don't describe exactly one episode get a 422.
func createConvertHandler(converter *convert.Converter, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logger.Debug("convertHandler called", zap.Int("bodyBytes", len(c.Body())))

		manifest := converter.Convert(c.Body())
		if manifest == nil {
			return c.Status(fiber.StatusUnprocessableEntity).SendString("Document doesn't describe exactly one episode")
		}
		return c.JSON(manifest)
	}
}

// createPreviewHandler creates the handler that only resolves the full-video
// preview image, without running a full conversion.
func createPreviewHandler(config config, logger *zap.Logger) fiber.Handler {
	priorities := config.VideoPreviewAttachments
	if priorities == nil {
		priorities = convert.DefaultOptions.VideoPreviewAttachments
	}
	return func(c *fiber.Ctx) error {
		logger.Debug("previewHandler called", zap.Int("bodyBytes", len(c.Body())))

		episode := mediapackage.Parse(c.Body())
		if episode == nil {
			return c.Status(fiber.StatusUnprocessableEntity).SendString("Document doesn't describe exactly one episode")
		}
		previewURL := convert.VideoPreviewURL(episode.Attachments, priorities)
		if previewURL == "" {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.JSON(fiber.Map{"preview": previewURL})
	}
}

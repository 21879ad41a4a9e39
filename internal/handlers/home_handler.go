package handlers

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/index.html
var indexPage []byte

// HandleIndex serves the upload form.
func HandleIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(indexPage)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jjenkins/bulletin/internal/catalog"
)

type catalogEntry struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// CatalogHandler lists the subject groupings and terms import accepts
func CatalogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjects := []catalogEntry{}
		for _, s := range catalog.SubjectGroupings() {
			subjects = append(subjects, catalogEntry{Name: s.Name, Code: s.Code})
		}

		terms := []catalogEntry{}
		for _, name := range catalog.Terms() {
			code, _ := catalog.TermCode(name)
			terms = append(terms, catalogEntry{Name: name, Code: code})
		}

		return c.JSON(fiber.Map{
			"subject_groupings": subjects,
			"terms":             terms,
		})
	}
}

package output

import (
	"path/filepath"
	"strings"
)

// Category is the cosmetic kind of a file shown in the structure overview.
type Category string

const (
	CategoryCode          Category = "code"
	CategoryDocument      Category = "document"
	CategoryConfiguration Category = "configuration"
	CategoryMarkup        Category = "markup"
	CategoryImage         Category = "image"
	CategoryOther         Category = "other"

	directoryGlyph = "📁"
)

var categoryExtensions = map[Category][]string{
	CategoryCode:          {".py", ".js", ".ts", ".java", ".cpp", ".c", ".h", ".go", ".rs"},
	CategoryDocument:      {".md", ".txt", ".rst", ".tex"},
	CategoryConfiguration: {".json", ".xml", ".yaml", ".yml", ".toml"},
	CategoryMarkup:        {".html", ".css", ".jsx", ".tsx"},
	CategoryImage:         {".jpg", ".jpeg", ".png", ".gif", ".svg", ".ico"},
}

var categoryGlyphs = map[Category]string{
	CategoryCode:          "📝",
	CategoryDocument:      "📃",
	CategoryConfiguration: "⚙️",
	CategoryMarkup:        "🌐",
	CategoryImage:         "🖼️",
	CategoryOther:         "📄",
}

var extensionCategories = func() map[string]Category {
	index := make(map[string]Category)
	for category, extensions := range categoryExtensions {
		for _, extension := range extensions {
			index[extension] = category
		}
	}
	return index
}()

// CategoryForName returns the category of a file name based on its extension.
func CategoryForName(name string) Category {
	if category, found := extensionCategories[strings.ToLower(filepath.Ext(name))]; found {
		return category
	}
	return CategoryOther
}

// Glyph returns the overview marker of the category.
func (category Category) Glyph() string {
	if glyph, found := categoryGlyphs[category]; found {
		return glyph
	}
	return categoryGlyphs[CategoryOther]
}

// LanguageTag returns the fence tag for a file: its extension without the dot, or "text".
func LanguageTag(name string) string {
	extension := filepath.Ext(name)
	if extension == "" || extension == name {
		return defaultLanguageTag
	}
	return strings.TrimPrefix(extension, ".")
}

package manifest

import "slices"

// MaxCategories is how many categories Typst Universe accepts per package.
const MaxCategories = 3

// Categories accepted by Typst Universe.
var Categories = []string{
	"components", "visualization", "model", "layout", "text", "languages",
	"scripting", "integration", "utility", "fun", "book", "report", "paper",
	"thesis", "poster", "flyer", "presentation", "cv", "office",
}

// Disciplines accepted by Typst Universe.
var Disciplines = []string{
	"agriculture", "anthropology", "archaeology", "architecture", "biology",
	"business", "chemistry", "communication", "computer-science", "design",
	"drawing", "economics", "education", "engineering", "fashion", "film",
	"geography", "geology", "history", "journalism", "law", "linguistics",
	"literature", "mathematics", "medicine", "music", "painting", "philosophy",
	"photography", "physics", "politics", "psychology", "sociology", "theater",
	"theology", "transportation",
}

// IsCategory reports whether c is a known category.
func IsCategory(c string) bool { return slices.Contains(Categories, c) }

// IsDiscipline reports whether d is a known discipline.
func IsDiscipline(d string) bool { return slices.Contains(Disciplines, d) }

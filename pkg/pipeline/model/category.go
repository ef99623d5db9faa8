package model

// Category is the name of a bucket of stage positions.
type Category string

// Known categories. CategoryNone is the implicit uncategorized bucket and always
// comes after every named category.
const (
	CategoryFilter      Category = "FILTER"
	CategoryTransformer Category = "TRANSFORMER"
	CategorySorter      Category = "SORTER"
	CategoryCompressor  Category = "COMPRESSOR"
	CategoryNone        Category = ""
)

// String returns the category name, "UNCATEGORIZED" for CategoryNone.
func (c Category) String() string {
	if c == CategoryNone {
		return "UNCATEGORIZED"
	}

	return string(c)
}

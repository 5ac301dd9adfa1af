package category

// Owner tells whether an entry is a built-in system category or one the user
// created. System entries are shared, immutable and undeletable.
type Owner string

const (
	OwnerSystem Owner = "system"
	OwnerUser   Owner = "user"
)

type Category struct {
	ID    int
	Name  string
	Owner Owner
	// SubCategories is never nil; a category without sub-categories carries an
	// empty list so clients can render an explicit "none" choice.
	SubCategories []SubCategory
}

type SubCategory struct {
	ID         int
	CategoryID int
	Name       string
	Owner      Owner
}

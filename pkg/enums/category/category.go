package category

import (
	"strings"
)

type Category struct {
	Name string
}

func (c Category) Code() string {
	return c.Name
}

func (c Category) Label() string {
	parts := strings.Split(c.Name, "-")
	for i := range parts {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, " ")
}

type Enum struct {
	Appetizer  Category
	MainCourse Category
	Dessert    Category
	Beverage   Category
	Other      Category
}

var Categories = Enum{
	Appetizer:  Category{Name: "appetizer"},
	MainCourse: Category{Name: "main-course"},
	Dessert:    Category{Name: "dessert"},
	Beverage:   Category{Name: "beverage"},
	Other:      Category{Name: "other"},
}

// All is the fixed kitchen priority order. Projection and summary views
// emit categories in exactly this sequence.
var All = []Category{
	Categories.Appetizer,
	Categories.MainCourse,
	Categories.Dessert,
	Categories.Beverage,
	Categories.Other,
}

// ByName returns the category for a given name, or nil if not found
func ByName(name string) *Category {
	for _, c := range All {
		if c.Name == name {
			return &c
		}
	}
	return nil
}

// Priority returns the position of a category code in the fixed kitchen
// order. Unknown codes sort after everything else.
func Priority(code string) int {
	for i, c := range All {
		if c.Name == code {
			return i
		}
	}
	return len(All)
}

var keywords = []struct {
	category Category
	words    []string
}{
	{Categories.Appetizer, []string{"salad", "soup", "spring roll", "bruschetta", "wings", "nachos", "dumpling", "starter"}},
	{Categories.Dessert, []string{"cake", "ice cream", "pudding", "brownie", "tart", "cheesecake", "tiramisu", "mousse"}},
	{Categories.Beverage, []string{"coffee", "tea", "juice", "soda", "lemonade", "water", "smoothie", "shake", "beer", "wine", "latte", "espresso"}},
	{Categories.MainCourse, []string{"burger", "pizza", "pasta", "steak", "rice", "noodle", "curry", "chicken", "fish", "sandwich", "taco", "biryani"}},
}

// Match derives a category from an item name when the order service does
// not supply one. Unmatched names fall to Other.
func Match(itemName string) Category {
	name := strings.ToLower(itemName)
	for _, k := range keywords {
		for _, w := range k.words {
			if strings.Contains(name, w) {
				return k.category
			}
		}
	}
	return Categories.Other
}

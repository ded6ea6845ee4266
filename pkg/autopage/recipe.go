package autopage

import (
	"fmt"
	"regexp"
)

// RecipeKey is the identity-matching expression declared inside a recipe.
// Same closed variant set as Identity, but the pattern variant holds match
// expressions rather than concrete values.
type RecipeKey interface {
	isRecipeKey()
	String() string
}

// KeyPackage matches a PackageIdentity by exact namespace.
type KeyPackage struct {
	Namespace string
}

// KeyStorefront matches a StorefrontIdentity by store and app id.
type KeyStorefront struct {
	Store Storefront
	AppID int64
}

// KeyPattern matches a PatternIdentity by regex. Either field may be nil,
// in which case that side is not constrained. At least one is set for any
// key produced by recipe loading.
type KeyPattern struct {
	Class *regexp.Regexp
	Name  *regexp.Regexp
}

func (KeyPackage) isRecipeKey()    {}
func (KeyStorefront) isRecipeKey() {}
func (KeyPattern) isRecipeKey()    {}

func (k KeyPackage) String() string { return "package:" + k.Namespace }

func (k KeyStorefront) String() string { return fmt.Sprintf("%s:%d", k.Store, k.AppID) }

func (k KeyPattern) String() string {
	class, name := "", ""
	if k.Class != nil {
		class = k.Class.String()
	}
	if k.Name != nil {
		name = k.Name.String()
	}
	return fmt.Sprintf("pattern:%s,%s", class, name)
}

// Recipe is a loaded button-page definition. Immutable after loading.
// A recipe may declare several keys; any one of them matching selects it.
type Recipe struct {
	Keys       []RecipeKey
	PageName   string
	Background string
	Buttons    []ButtonSpec
}

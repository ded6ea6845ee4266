package autopage

// Decide picks the reconciliation action for a compiled page.
//
// A page name in userOwned is one the user created or edited by hand; those
// are never overwritten, regardless of anything else. A name in known is a
// page this tool generated earlier and may freely replace. Anything else is
// new.
func Decide(pageName string, known, userOwned map[string]bool) Action {
	switch {
	case userOwned[pageName]:
		return ActionSkip
	case known[pageName]:
		return ActionReplace
	default:
		return ActionCreate
	}
}

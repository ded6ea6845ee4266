package autopage

import (
	"regexp"
	"strconv"
)

// Environment variables a storefront sets on game processes. Checked in
// order; the first one holding a positive integer wins.
var storefrontEnvVars = []struct {
	name  string
	store Storefront
}{
	{"SteamAppId", StorefrontSteam},
	{"SteamGameId", StorefrontSteam},
	{"STEAM_COMPAT_APP_ID", StorefrontSteam},
}

// Reverse-domain package naming, e.g. "org.gnome.Calculator". Requires at
// least three dot-separated segments so plain class names like "firefox"
// or versioned ones like "gimp-2.10" don't get promoted.
var packageClassRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*(\.[a-zA-Z][a-zA-Z0-9_-]*){2,}$`)

// DeriveIdentities turns a window observation into candidate identities,
// most specific first. It never fails: malformed input just yields fewer
// candidates. The pattern fallback is always emitted when the observation
// has a class or title, so pattern-only recipes can match apps that carry
// storefront or package signals too.
func DeriveIdentities(obs WindowObservation) []Identity {
	var ids []Identity

	if id, ok := storefrontIdentity(obs.Env); ok {
		ids = append(ids, id)
	}

	if packageClassRe.MatchString(obs.Class) {
		ids = append(ids, PackageIdentity{Namespace: obs.Class})
	}

	if obs.Class != "" || obs.Title != "" {
		ids = append(ids, PatternIdentity{Class: obs.Class, Title: obs.Title})
	}

	return ids
}

func storefrontIdentity(env map[string]string) (Identity, bool) {
	if len(env) == 0 {
		return nil, false
	}

	for _, v := range storefrontEnvVars {
		raw, ok := env[v.name]
		if !ok {
			continue
		}

		appID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || appID <= 0 {
			continue
		}

		return StorefrontIdentity{Store: v.store, AppID: appID}, true
	}

	return nil, false
}

package siteconfig

import "strings"

const (
	// HomepageID is the config that backs the WebSitioPro marketing homepage.
	HomepageID   int64 = 1
	HomepageName       = "WebSitioPro Homepage"
)

var protectedNames = map[string]bool{
	HomepageName:             true,
	"Homepage Configuration": true,
}

// IsProtected reports whether cfg belongs to the platform rather than a client.
func IsProtected(cfg WebsiteConfig) bool {
	return cfg.ID == HomepageID || protectedNames[cfg.Name]
}

// IsDemo reports whether cfg is a template showcase.
func IsDemo(cfg WebsiteConfig) bool {
	return strings.Contains(strings.ToLower(cfg.Name), "demo")
}

// IsClient reports whether cfg is a paying client's site.
func IsClient(cfg WebsiteConfig) bool {
	return !IsProtected(cfg) && !IsDemo(cfg)
}

// IsReservedPath reports whether the first path segment belongs to the app
// itself and must never be treated as a client slug.
func IsReservedPath(segment string) bool {
	switch {
	case segment == "":
		return true
	case strings.HasPrefix(segment, "api/"), strings.HasPrefix(segment, "assets/"):
		return true
	case segment == "editor", strings.HasPrefix(segment, "editor-"), strings.HasPrefix(segment, "editor/"):
		return true
	case segment == "pro", strings.HasPrefix(segment, "pro-"), strings.HasPrefix(segment, "pro/"):
		return true
	case strings.Contains(segment, "."):
		return true
	case strings.HasSuffix(segment, "-demo"):
		return true
	}
	return false
}

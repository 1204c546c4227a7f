// Package misc keeps build time information.
package misc

// Set with -ldflags "-X bookforge/misc.version=... -X bookforge/misc.githash=..."
var (
	version = "dev"
	githash = "unknown"
)

const appName = "bookforge"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return githash
}

package pgshift

var (
	// Used for compile time versioning - to set properly, ensure to run
	// the go install/build command like the following:
	// go build -ldflags "-X github.com/pgshift/pgshift.Sha=local -X github.com/pgshift/pgshift.Build=infinite"

	// Sha the commit sha
	Sha string
	// Build the build number
	Build string
)

// Version returns the version/build
func Version() (string, string) {
	return Sha, Build
}

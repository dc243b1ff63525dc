// ABOUTME: Version information for flac2wav
// ABOUTME: Product identity reported by --version
package version

const (
	// Version is the release version
	Version = "0.1.0"

	// Product is the binary name
	Product = "flac2wav"

	// Manufacturer is the project publisher
	Manufacturer = "Resonate Protocol"
)

// String returns the product and version in one line
func String() string {
	return Product + " " + Version
}

// ABOUTME: Version metadata for the avframe tools
// ABOUTME: Reported by the CLI's -version flag
package version

import "fmt"

const (
	// Version is the release version
	Version = "0.3.0"
	// Product is the product name
	Product = "avframe"
	// Manufacturer identifies the maintainers
	Manufacturer = "Resonate Protocol"
)

// String returns the line printed by -version
func String() string {
	return fmt.Sprintf("%s %s (%s)", Product, Version, Manufacturer)
}

// Package artifacts provides scoped temporary-file tracking with guaranteed
// cleanup across success and failure paths.
package artifacts

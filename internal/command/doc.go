// Package command wraps external tool invocation with combined output capture
// and exit-status reporting.
package command

// Package fs resolves the markdown files a batch run should format.
package fs

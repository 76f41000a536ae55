// Package fstest provides a conformance test suite for core.FS providers and
// the test doubles used to exercise fsx operations against them.
//
// The suite validates the contracts the copy, move and remove operations rely
// on: the required ReadFS, WriteFS and ManageFS methods, and the optional
// LinkFS, MetadataFS, RemoveAllFS and ChrootFS capabilities. Optional groups
// skip when the provider does not implement the capability.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func() core.FS {
//	        return myprovider.New()
//	    })
//	}
//
// FaultFS wraps a provider and injects errors into selected calls, and
// HashTree digests a directory tree so two trees can be compared.
package fstest

import (
	"slices"
	"testing"

	"github.com/jmgilman/go/fsx/core"
)

// FSTestConfig configures the test suite to match filesystem behavior characteristics.
type FSTestConfig struct {
	// NoIdentity indicates file infos carry no device and inode numbers.
	// When false, the suite checks that core.IDOf reports stable identities.
	NoIdentity bool

	// SkipTests lists specific test groups to skip (e.g., "MetadataFS").
	SkipTests []string
}

// POSIXTestConfig returns configuration for POSIX-like filesystems (local, memory).
func POSIXTestConfig() FSTestConfig {
	return FSTestConfig{}
}

// TestSuite runs all applicable conformance tests against a filesystem.
// The newFS function should return a fresh, empty filesystem for each test
// group. Uses POSIXTestConfig() by default.
func TestSuite(t *testing.T, newFS func() core.FS) {
	TestSuiteWithConfig(t, newFS, POSIXTestConfig())
}

// TestSuiteWithConfig runs conformance tests with behavior configuration.
func TestSuiteWithConfig(t *testing.T, newFS func() core.FS, config FSTestConfig) {
	groups := []struct {
		name string
		run  func(t *testing.T, filesystem core.FS, config FSTestConfig)
	}{
		{"ReadFS", TestReadFSWithConfig},
		{"WriteFS", TestWriteFSWithConfig},
		{"ManageFS", TestManageFSWithConfig},
		{"LinkFS", TestLinkFSWithConfig},
		{"MetadataFS", TestMetadataFSWithConfig},
		{"Identity", TestIdentityWithConfig},
		{"ChrootFS", TestChrootFSWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if slices.Contains(config.SkipTests, g.name) {
				t.Skip("Skipped by provider configuration")
			}
			g.run(t, newFS(), config)
		})
	}
}

package domain

import (
	"github.com/Masterminds/semver/v3"
)

// Version wraps semver.Version for release tagging.
type Version struct {
	*semver.Version
}

// NewVersion creates a new Version from a string. A leading "v" is
// accepted and stripped, so "v1.2.3" and "1.2.3" name the same release.
func NewVersion(s string) (*Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, err
	}
	return &Version{v}, nil
}

// TagName returns the git tag name for this release.
func (v *Version) TagName() string {
	return "v" + v.Version.String()
}

// TagMessage returns the annotation message for the release tag. The
// message is identical to the tag name.
func (v *Version) TagMessage() string {
	return v.TagName()
}

// Compare compares two versions.
func (v *Version) Compare(other *Version) int {
	return v.Version.Compare(other.Version)
}

// String returns the version string with v prefix.
func (v *Version) String() string {
	return "v" + v.Version.String()
}

package domain

// Release holds all metadata related to a release run.

type Release struct {
	Version   *Version
	TagName   string
	Branch    string
	OutputDir string
}

// NewRelease builds the release metadata for a version published from
// the given branch.
func NewRelease(version *Version, branch, outputDir string) *Release {
	return &Release{
		Version:   version,
		TagName:   version.TagName(),
		Branch:    branch,
		OutputDir: outputDir,
	}
}

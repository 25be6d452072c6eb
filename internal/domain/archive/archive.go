package archive

// bytesPerMiB converts archive sizes for the summary line.
const bytesPerMiB = 1024 * 1024

// ExclusionRule is a literal substring; any candidate path containing it is rejected.
type ExclusionRule string

// Entry is one file stored in the archive.
type Entry struct {
	// Source is the path the file was read from.
	Source string
	// Name is the forward-slash relative name stored in the archive.
	Name string
}

// ManifestCheck expects some archive entry name to contain Fragment.
type ManifestCheck struct {
	// Label is the human-readable name printed in the checklist.
	Label string `yaml:"label"`
	// Fragment must be a substring of at least one entry name.
	Fragment string `yaml:"fragment"`
}

// CheckResult is the outcome of a single ManifestCheck.
type CheckResult struct {
	Check ManifestCheck
	Found bool
}

// Summary describes a finished archive.
type Summary struct {
	// Path is the absolute location of the archive.
	Path string
	// SizeBytes is the archive size on disk.
	SizeBytes int64
	// Files is the number of entries written during the run.
	Files int
	// Checks holds the manifest verification results in table order.
	Checks []CheckResult
}

// SizeMiB returns the archive size in mebibytes.
func (s *Summary) SizeMiB() float64 {
	return float64(s.SizeBytes) / bytesPerMiB
}

// AllFound reports whether every manifest check passed.
func (s *Summary) AllFound() bool {
	for _, result := range s.Checks {
		if !result.Found {
			return false
		}
	}

	return true
}

// Missing returns the checks that were not satisfied.
func (s *Summary) Missing() []ManifestCheck {
	var missing []ManifestCheck

	for _, result := range s.Checks {
		if !result.Found {
			missing = append(missing, result.Check)
		}
	}

	return missing
}

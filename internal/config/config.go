package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/project-archiver/internal/domain/archive"
)

// Config is the archive plan consumed by the archiver service.
type Config struct {
	// ArchiveName is the archive path, relative to the project root unless absolute.
	ArchiveName string `yaml:"archive_name"`
	// SourceTree is archived recursively with names relative to the project root.
	SourceTree string `yaml:"source_tree"`
	// ModuleFiles are build files of the application module, added by exact path.
	ModuleFiles []string `yaml:"module_files"`
	// RootFiles are top-level build files, added by exact path.
	RootFiles []string `yaml:"root_files"`
	// WrapperDir is the build-tool wrapper directory, archived recursively if present.
	WrapperDir string `yaml:"wrapper_dir"`
	// WrapperScripts are the wrapper launcher scripts.
	WrapperScripts []string `yaml:"wrapper_scripts"`
	// RulesFile is a single security rules file.
	RulesFile string `yaml:"rules_file"`
	// VCSFiles are version-control metadata files kept in the archive.
	VCSFiles []string `yaml:"vcs_files"`
	// DocExtensions select top-level documentation and script files.
	DocExtensions []string `yaml:"doc_extensions"`
	// Exclusions are literal substrings that keep paths out of the archive.
	Exclusions []archive.ExclusionRule `yaml:"exclusions"`
	// Manifest lists the entries expected in the finished archive.
	Manifest []archive.ManifestCheck `yaml:"manifest"`
}

const (
	// DefaultArchiveName is the archive produced when no plan overrides it.
	DefaultArchiveName = "FamilyLogbook_Project.zip"

	// DefaultConfigFilename is the file written by the config subcommand.
	DefaultConfigFilename = "archive-plan.yaml"

	// DefaultFilePermissions is the file permission for saved plans.
	DefaultFilePermissions = 0o644
)

var (
	// errConfigIsNotSet is returned when a nil plan is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errArchiveNameRequired is returned when the archive name is empty.
	errArchiveNameRequired = errors.New("archive name must be provided")
	// errSourceTreeRequired is returned when the source tree is empty.
	errSourceTreeRequired = errors.New("source tree must be provided")
	// errEmptyExclusion is returned for an empty exclusion rule.
	errEmptyExclusion = errors.New("exclusion rule must not be empty")
	// errInvalidManifestCheck is returned for a manifest check missing its label or fragment.
	errInvalidManifestCheck = errors.New("manifest check needs both label and fragment")
)

// Default returns the built-in plan for the Family Logbook Android project.
func Default() *Config {
	return &Config{
		ArchiveName: DefaultArchiveName,
		SourceTree:  "app/src",
		ModuleFiles: []string{
			"app/build.gradle.kts",
			"app/proguard-rules.pro",
			"app/google-services.json.template",
		},
		RootFiles: []string{
			"build.gradle.kts",
			"settings.gradle.kts",
			"gradle.properties",
		},
		WrapperDir:     "gradle/wrapper",
		WrapperScripts: []string{"gradlew", "gradlew.bat"},
		RulesFile:      "firestore.rules",
		VCSFiles:       []string{".gitignore", ".gitattributes"},
		DocExtensions:  []string{".md", ".txt", ".py", ".bat", ".ps1"},
		Exclusions: []archive.ExclusionRule{
			"build", ".gradle", ".idea", "*.iml",
			// The real services file is a secret; its .template sibling is added explicitly.
			"local.properties", "google-services.json",
			"*.apk", "*.aab", "*.jks", "*.keystore",
			"__pycache__", ".git",
		},
		Manifest: []archive.ManifestCheck{
			{
				Label:    "SpeechRecognizerHelper.kt",
				Fragment: "app/src/main/java/com/familylogbook/app/data/speech/SpeechRecognizerHelper.kt",
			},
			{
				Label:    "VaccinationCalendar.kt",
				Fragment: "app/src/main/java/com/familylogbook/app/domain/vaccination/VaccinationCalendar.kt",
			},
			{
				Label:    "ShoppingDealsChecker.kt",
				Fragment: "app/src/main/java/com/familylogbook/app/data/shopping/ShoppingDealsChecker.kt",
			},
			{
				Label:    "SmartHomeManager.kt",
				Fragment: "app/src/main/java/com/familylogbook/app/data/smarthome/SmartHomeManager.kt",
			},
			{Label: "AndroidManifest.xml", Fragment: "app/src/main/AndroidManifest.xml"},
			{Label: "build.gradle.kts (app)", Fragment: "app/build.gradle.kts"},
			{Label: "build.gradle.kts (root)", Fragment: "build.gradle.kts"},
		},
	}
}

// Load reads a plan from path. An empty path yields the built-in defaults.
// Fields missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}

	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the plan to path as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}

	return nil
}

// Validate checks required fields and normalizes document extensions.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if strings.TrimSpace(cfg.ArchiveName) == "" {
		return errArchiveNameRequired
	}

	if strings.TrimSpace(cfg.SourceTree) == "" {
		return errSourceTreeRequired
	}

	for i, rule := range cfg.Exclusions {
		if rule == "" {
			return fmt.Errorf("exclusions[%d]: %w", i, errEmptyExclusion)
		}
	}

	for i, check := range cfg.Manifest {
		if check.Label == "" || check.Fragment == "" {
			return fmt.Errorf("manifest[%d]: %w", i, errInvalidManifestCheck)
		}
	}

	for i, ext := range cfg.DocExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		cfg.DocExtensions[i] = ext
	}

	return nil
}

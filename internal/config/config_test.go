package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/project-archiver/internal/domain/archive"
)

// TestDefault_IsValid ensures the built-in plan passes validation untouched.
func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultArchiveName, cfg.ArchiveName)
	require.Len(t, cfg.Manifest, 7)
	require.Contains(t, cfg.Exclusions, archive.ExclusionRule("google-services.json"))
	require.Contains(t, cfg.ModuleFiles, "app/google-services.json.template")
}

// TestValidate checks required fields and extension normalization.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	cfg := Default()
	cfg.ArchiveName = " "
	require.ErrorIs(t, Validate(cfg), errArchiveNameRequired)

	cfg = Default()
	cfg.SourceTree = ""
	require.ErrorIs(t, Validate(cfg), errSourceTreeRequired)

	cfg = Default()
	cfg.Exclusions = append(cfg.Exclusions, "")
	require.ErrorIs(t, Validate(cfg), errEmptyExclusion)

	cfg = Default()
	cfg.Manifest = append(cfg.Manifest, archive.ManifestCheck{Label: "orphan"})
	require.ErrorIs(t, Validate(cfg), errInvalidManifestCheck)

	cfg = Default()
	cfg.DocExtensions = []string{"MD", " .Txt "}
	require.NoError(t, Validate(cfg))
	require.Equal(t, []string{".md", ".txt"}, cfg.DocExtensions)
}

// TestLoad_EmptyPathReturnsDefaults verifies that no plan file means the built-in plan.
func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestLoad_PartialFileKeepsDefaults ensures omitted keys fall back to defaults.
func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("archive_name: out/Custom.zip\nrules_file: \"\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "out/Custom.zip", cfg.ArchiveName)
	require.Empty(t, cfg.RulesFile)
	require.Equal(t, Default().SourceTree, cfg.SourceTree)
	require.Equal(t, Default().Manifest, cfg.Manifest)
}

// TestLoad_Errors covers a missing file and malformed YAML.
func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("exclusions: [unterminated"), 0o600))

	_, err = Load(bad)
	require.Error(t, err)
}

// TestSaveLoadRoundtrip ensures a saved plan loads back identically.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFilename)

	want := Default()
	want.Manifest = []archive.ManifestCheck{{Label: "Main", Fragment: "src/Main.kt"}}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)

	require.ErrorIs(t, Save(path, nil), errConfigIsNotSet)
}

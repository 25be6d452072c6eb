package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/project-archiver/internal/domain/archive"
)

func androidRules() []archive.ExclusionRule {
	return []archive.ExclusionRule{
		"build", ".gradle", ".idea", "*.iml",
		"local.properties", "google-services.json",
		"*.apk", "*.aab", "*.jks", "*.keystore",
		"__pycache__", ".git",
	}
}

// TestExcluded covers rule hits, case folding and separator normalization.
func TestExcluded(t *testing.T) {
	t.Parallel()

	f := New(androidRules())

	excluded := []string{
		"app/build/outputs/apk/debug/app-debug.apk",
		"APP/BUILD/tmp",
		`app\src\main\.idea\workspace.xml`,
		".gradle/8.2/checksums",
		"local.properties",
		"app/google-services.json",
		".git/HEAD",
		".gitignore",
		"scripts/__pycache__/tool.pyc",
		"app/src/main/java/com/familylogbook/app/ui/BuildConfigScreen.kt",
	}
	for _, path := range excluded {
		require.True(t, f.Excluded(path), path)
	}

	kept := []string{
		"app/src/main/AndroidManifest.xml",
		"app/src/main/java/com/familylogbook/app/MainActivity.kt",
		"gradle/wrapper/gradle-wrapper.properties",
		"README.md",
		"firestore.rules",
	}
	for _, path := range kept {
		require.False(t, f.Excluded(path), path)
	}
}

// TestExcluded_GlobRulesAreLiteral pins the substring semantics of glob-looking rules.
func TestExcluded_GlobRulesAreLiteral(t *testing.T) {
	t.Parallel()

	f := New(androidRules())

	require.False(t, f.Excluded("release/app-release.aab"))
	require.False(t, f.Excluded("keys/upload.jks"))
	require.False(t, f.Excluded("FamilyLogbook.iml"))
	require.True(t, f.Excluded("weird/*.apk/file"))

	require.Equal(t,
		[]archive.ExclusionRule{"*.iml", "*.apk", "*.aab", "*.jks", "*.keystore"},
		f.GlobLikeRules(),
	)
}

// TestMatchingRule returns the first rule in order.
func TestMatchingRule(t *testing.T) {
	t.Parallel()

	f := New([]archive.ExclusionRule{"Build", "gradle"})

	rule, ok := f.MatchingRule("app/build.gradle.kts")
	require.True(t, ok)
	require.Equal(t, archive.ExclusionRule("build"), rule)

	_, ok = f.MatchingRule("settings.kts")
	require.False(t, ok)
}

// TestNew_DropsEmptyRules makes sure an empty rule does not exclude everything.
func TestNew_DropsEmptyRules(t *testing.T) {
	t.Parallel()

	f := New([]archive.ExclusionRule{"", ".git"})

	require.Equal(t, []archive.ExclusionRule{".git"}, f.Rules())
	require.False(t, f.Excluded("src/Main.kt"))
	require.False(t, New(nil).Excluded("anything"))
}

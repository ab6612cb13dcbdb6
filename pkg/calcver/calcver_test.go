package calcver_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calcver/calcver/internal/testutil"
	"github.com/calcver/calcver/pkg/calcver"
)

func TestNew_NotARepository(t *testing.T) {
	_, err := calcver.New(calcver.Options{Path: t.TempDir()})
	require.Error(t, err)
}

func TestCalculator_ComputeVersion(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	first := repo.AddCommit("initial")
	repo.CreateTag("v1.0.0", first)
	repo.AddCommit("work")

	calc, err := calcver.New(calcver.Options{Path: repo.Path()})
	require.NoError(t, err)
	defer calc.Close()

	version, err := calc.ComputeVersion()
	require.NoError(t, err)
	require.Equal(t, "1.0.0-1", version)

	// metadata queries by name
	distance, ok := calc.Metadata("COMMIT_DISTANCE")
	require.True(t, ok)
	require.Equal(t, "1", distance)

	baseTag, ok := calc.Metadata("BASE_TAG")
	require.True(t, ok)
	require.Equal(t, "v1.0.0", baseTag)

	_, ok = calc.Metadata("NOT_A_KEY")
	require.False(t, ok)
}

func TestCalculator_ConfigAutoDetect(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	first := repo.AddCommit("initial")
	repo.CreateTag("v1.0.0", first)
	repo.AddCommit("work")
	repo.WriteConfig("auto-increment-patch: true\nuse-dirty: false\n")

	calc, err := calcver.New(calcver.Options{Path: repo.Path()})
	require.NoError(t, err)
	defer calc.Close()

	version, err := calc.ComputeVersion()
	require.NoError(t, err)
	require.Equal(t, "1.0.1-1", version)
}

func TestCalculator_ExplicitConfigPath(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	first := repo.AddCommit("initial")
	repo.CreateTag("v2.0.0", first)

	configPath := filepath.Join(t.TempDir(), "versions.yml")
	require.NoError(t, os.WriteFile(configPath,
		[]byte("strategy: pattern\nversion-pattern: \"v${major}.${minor}.${patch}\"\n"), 0o644))

	calc, err := calcver.New(calcver.Options{Path: repo.Path(), ConfigPath: configPath})
	require.NoError(t, err)
	defer calc.Close()

	version, err := calc.ComputeVersion()
	require.NoError(t, err)
	require.Equal(t, "v2.0.0", version)
}

func TestCalculator_InvalidConfigSurfacesTypedError(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("initial")
	repo.WriteConfig("strategy: bogus\n")

	_, err := calcver.New(calcver.Options{Path: repo.Path()})
	require.Error(t, err)

	var cfgErr *calcver.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestCalculator_DirtyError(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	first := repo.AddCommit("initial")
	repo.CreateTag("v1.0.0", first)
	repo.WriteFile("scratch.txt", "uncommitted")
	repo.WriteConfig("fail-if-dirty: true\n")

	calc, err := calcver.New(calcver.Options{Path: repo.Path()})
	require.NoError(t, err)
	defer calc.Close()

	_, err = calc.ComputeVersion()
	var dirtyErr *calcver.DirtyRepositoryError
	require.True(t, errors.As(err, &dirtyErr))
}

func TestMetadataKeys(t *testing.T) {
	keys := calcver.MetadataKeys()
	require.NotEmpty(t, keys)
	require.Contains(t, keys, "CALCULATED_VERSION")
	require.Contains(t, keys, "COMMIT_DISTANCE")
}

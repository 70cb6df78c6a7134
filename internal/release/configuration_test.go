package release

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pubrelease/internal/repos/shared"
)

func TestDefaultConfigurationIsValid(testInstance *testing.T) {
	configuration := DefaultConfiguration().Sanitize()
	require.NoError(testInstance, configuration.Validate())
	require.True(testInstance, configuration.PublicRepository.VerifyRemote)
	require.Equal(testInstance, ArtifactModeCopy, configuration.Artifact.Mode)
	require.Equal(testInstance, []string{"stdout", "stderr", "running"}, configuration.HiddenStreams)
	require.Equal(testInstance, []string{
		"Test on a device in release mode.",
		"Sanity check the master branch.",
		"Review the unobfuscated aar and javadocs for any anomalies.",
	}, configuration.Checklist)
}

func TestConfigurationDerivedValues(testInstance *testing.T) {
	configuration := DefaultConfiguration()
	configuration.TagPrefix = "v"

	require.Equal(testInstance, "io.card:android-sdk:REPLACE_VERSION", configuration.PlaceholderCoordinate())
	require.Equal(testInstance, "io.card:android-sdk:1.4.0", configuration.VersionedCoordinate("1.4.0"))
	require.Equal(testInstance, "Update library to 1.4.0", configuration.CommitMessage("1.4.0"))
	require.Equal(testInstance, "card.io-1.4.0.aar", configuration.ArtifactFileName("1.4.0", ".aar"))

	tagName, tagError := configuration.TagName("1.4.0")
	require.NoError(testInstance, tagError)
	require.Equal(testInstance, shared.TagName("v1.4.0"), tagName)

	_, tagError = configuration.TagName("1.4.0..bad")
	require.ErrorIs(testInstance, tagError, shared.ErrInvalidValue)
}

func TestConfigurationSanitize(testInstance *testing.T) {
	configuration := Configuration{
		PublicRepository: PublicRepositoryConfiguration{URL: "  " + testPublicURLConstant + " ", Path: " distribution-repo "},
		Build:            BuildConfiguration{Arguments: []string{" clean ", "", "assembleRelease"}},
		Artifact:         ArtifactConfiguration{Mode: " EXTRACT "},
		Checklist:        []string{"  ", "Test on a device in release mode."},
	}

	sanitized := configuration.Sanitize()
	require.Equal(testInstance, testPublicURLConstant, sanitized.PublicRepository.URL)
	require.Equal(testInstance, "distribution-repo", sanitized.PublicRepository.Path)
	require.Equal(testInstance, []string{"clean", "assembleRelease"}, sanitized.Build.Arguments)
	require.Equal(testInstance, ArtifactModeExtract, sanitized.Artifact.Mode)
	require.Equal(testInstance, []string{"Test on a device in release mode."}, sanitized.Checklist)
	require.Equal(testInstance, defaultCommitMessageTemplateConstant, sanitized.CommitMessageTemplate)
}

func TestConfigurationValidate(testInstance *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(configuration *Configuration)
		expectedError error
	}{
		{name: "missing_url", mutate: func(configuration *Configuration) { configuration.PublicRepository.URL = "" }, expectedError: ErrPublicRepositoryURLRequired},
		{name: "missing_path", mutate: func(configuration *Configuration) { configuration.PublicRepository.Path = "" }, expectedError: ErrPublicRepositoryPathRequired},
		{name: "invalid_remote", mutate: func(configuration *Configuration) { configuration.PublicRepository.RemoteName = "pub/lic" }, expectedError: shared.ErrInvalidValue},
		{name: "invalid_branch", mutate: func(configuration *Configuration) { configuration.PublicRepository.Branch = "bad branch" }, expectedError: shared.ErrInvalidValue},
		{name: "missing_executable", mutate: func(configuration *Configuration) { configuration.Build.Executable = "" }, expectedError: ErrBuildExecutableRequired},
		{name: "missing_artifact_path", mutate: func(configuration *Configuration) { configuration.Artifact.Path = "" }, expectedError: ErrArtifactPathRequired},
		{name: "missing_artifact_name", mutate: func(configuration *Configuration) { configuration.Artifact.Name = "" }, expectedError: ErrArtifactNameRequired},
		{name: "unknown_mode", mutate: func(configuration *Configuration) { configuration.Artifact.Mode = "symlink" }, expectedError: ErrInvalidArtifactMode},
		{name: "template_without_verb", mutate: func(configuration *Configuration) { configuration.CommitMessageTemplate = "Update library" }, expectedError: ErrInvalidCommitMessageTemplate},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			configuration := DefaultConfiguration()
			testCase.mutate(&configuration)
			require.ErrorIs(subTest, configuration.Sanitize().Validate(), testCase.expectedError)
		})
	}
}

func TestDefaultConfigurationValuesUseRootKey(testInstance *testing.T) {
	values := DefaultConfigurationValues("release")
	require.Equal(testInstance, "git@github.com:card-io/card.io-Android-SDK.git", values["release.public_repository.url"])
	require.Equal(testInstance, true, values["release.public_repository.verify_remote"])
	require.Equal(testInstance, "copy", values["release.artifact.mode"])
	require.Equal(testInstance, []string{":card.io:uploadArchives"}, values["release.build.upload_arguments"])
	require.Equal(testInstance, false, values["release.assume_yes"])
	require.Contains(testInstance, values, "release.require_clean_source")
}

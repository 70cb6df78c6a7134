package release

import (
	"fmt"
	"strings"

	"github.com/temirov/pubrelease/internal/repos/shared"
)

const (
	configurationKeySeparatorConstant           = "."
	sourceRepositoryPathKeyConstant             = "source_repository_path"
	publicRepositoryKeyConstant                 = "public_repository"
	publicRepositoryURLKeyConstant              = "url"
	publicRepositoryPathKeyConstant             = "path"
	publicRepositoryRemoteNameKeyConstant       = "remote_name"
	publicRepositoryBranchKeyConstant           = "branch"
	publicRepositoryVerifyRemoteKeyConstant     = "verify_remote"
	buildKeyConstant                            = "build"
	buildExecutableKeyConstant                  = "executable"
	buildArgumentsKeyConstant                   = "arguments"
	buildUploadArgumentsKeyConstant             = "upload_arguments"
	buildWorkingDirectoryKeyConstant            = "working_directory"
	artifactKeyConstant                         = "artifact"
	artifactPathKeyConstant                     = "path"
	artifactNameKeyConstant                     = "name"
	artifactDestinationDirectoryKeyConstant     = "destination_directory"
	artifactModeKeyConstant                     = "mode"
	ancillaryKeyConstant                        = "ancillary"
	ancillarySDKDirectoryKeyConstant            = "sdk_directory"
	ancillarySampleAppDirectoryKeyConstant      = "sample_app_directory"
	placeholderKeyConstant                      = "placeholder"
	placeholderTokenKeyConstant                 = "token"
	placeholderNamespaceKeyConstant             = "namespace"
	placeholderArtifactIDKeyConstant            = "artifact_id"
	placeholderFilesKeyConstant                 = "files"
	commitMessageTemplateKeyConstant            = "commit_message_template"
	tagPrefixKeyConstant                        = "tag_prefix"
	checklistKeyConstant                        = "checklist"
	nextStepsKeyConstant                        = "next_steps"
	requireCleanSourceKeyConstant               = "require_clean_source"
	assumeYesKeyConstant                        = "assume_yes"
	verboseKeyConstant                          = "verbose"
	hiddenStreamsKeyConstant                    = "hidden_streams"
	defaultPublicRepositoryURLConstant          = "git@github.com:card-io/card.io-Android-SDK.git"
	defaultPublicRepositoryPathConstant         = "distribution-repo"
	defaultPublicRemoteNameConstant             = "public"
	defaultPublicBranchConstant                 = "master"
	defaultBuildExecutableConstant              = "./gradlew"
	defaultArtifactPathConstant                 = "card.io/build/outputs/aar/card.io-release.aar"
	defaultArtifactNameConstant                 = "card.io"
	defaultArtifactDestinationDirectoryConstant = "aars"
	defaultSDKDirectoryConstant                 = "sdk"
	defaultSampleAppDirectoryConstant           = "SampleApp"
	defaultPlaceholderTokenConstant             = "REPLACE_VERSION"
	defaultPlaceholderNamespaceConstant         = "io.card"
	defaultPlaceholderArtifactIDConstant        = "android-sdk"
	defaultCommitMessageTemplateConstant        = "Update library to %s"
	placeholderCoordinateSeparatorConstant      = ":"
	artifactModeInvalidTemplateConstant         = "%w: %q"
	commitTemplateInvalidTemplateConstant       = "%w: %q"
	configurationFieldErrorTemplateConstant     = "%w: %s"
	commitMessageVerbConstant                   = "%s"
)

// ArtifactMode selects how the build artifact is placed in the public repository.
type ArtifactMode string

// Supported artifact placement modes.
const (
	ArtifactModeCopy    ArtifactMode = "copy"
	ArtifactModeExtract ArtifactMode = "extract"
)

// PublicRepositoryConfiguration locates the public distribution repository.
type PublicRepositoryConfiguration struct {
	URL          string `mapstructure:"url"`
	Path         string `mapstructure:"path"`
	RemoteName   string `mapstructure:"remote_name"`
	Branch       string `mapstructure:"branch"`
	VerifyRemote bool   `mapstructure:"verify_remote"`
}

// BuildConfiguration describes the build tool invocation.
type BuildConfiguration struct {
	Executable       string   `mapstructure:"executable"`
	Arguments        []string `mapstructure:"arguments"`
	UploadArguments  []string `mapstructure:"upload_arguments"`
	WorkingDirectory string   `mapstructure:"working_directory"`
}

// ArtifactConfiguration describes where the build artifact lives and how it is published.
type ArtifactConfiguration struct {
	Path                 string       `mapstructure:"path"`
	Name                 string       `mapstructure:"name"`
	DestinationDirectory string       `mapstructure:"destination_directory"`
	Mode                 ArtifactMode `mapstructure:"mode"`
}

// AncillaryConfiguration lists the source directories copied next to the artifact.
type AncillaryConfiguration struct {
	SDKDirectory       string `mapstructure:"sdk_directory"`
	SampleAppDirectory string `mapstructure:"sample_app_directory"`
}

// PlaceholderConfiguration describes the dependency coordinate rewritten with the release version.
type PlaceholderConfiguration struct {
	Token      string   `mapstructure:"token"`
	Namespace  string   `mapstructure:"namespace"`
	ArtifactID string   `mapstructure:"artifact_id"`
	Files      []string `mapstructure:"files"`
}

// Configuration is the complete, immutable description of a release run.
type Configuration struct {
	SourceRepositoryPath  string                        `mapstructure:"source_repository_path"`
	PublicRepository      PublicRepositoryConfiguration `mapstructure:"public_repository"`
	Build                 BuildConfiguration            `mapstructure:"build"`
	Artifact              ArtifactConfiguration         `mapstructure:"artifact"`
	Ancillary             AncillaryConfiguration        `mapstructure:"ancillary"`
	Placeholder           PlaceholderConfiguration      `mapstructure:"placeholder"`
	CommitMessageTemplate string                        `mapstructure:"commit_message_template"`
	TagPrefix             string                        `mapstructure:"tag_prefix"`
	Checklist             []string                      `mapstructure:"checklist"`
	NextSteps             []string                      `mapstructure:"next_steps"`
	RequireCleanSource    bool                          `mapstructure:"require_clean_source"`
	AssumeYes             bool                          `mapstructure:"assume_yes"`
	Verbose               bool                          `mapstructure:"verbose"`
	HiddenStreams         []string                      `mapstructure:"hidden_streams"`
}

// DefaultConfiguration returns the card.io Android SDK release settings.
func DefaultConfiguration() Configuration {
	return Configuration{
		PublicRepository: PublicRepositoryConfiguration{
			URL:          defaultPublicRepositoryURLConstant,
			Path:         defaultPublicRepositoryPathConstant,
			RemoteName:   defaultPublicRemoteNameConstant,
			Branch:       defaultPublicBranchConstant,
			VerifyRemote: true,
		},
		Build: BuildConfiguration{
			Executable:      defaultBuildExecutableConstant,
			Arguments:       []string{"clean", ":card.io:assembleRelease", "releaseDoc"},
			UploadArguments: []string{":card.io:uploadArchives"},
		},
		Artifact: ArtifactConfiguration{
			Path:                 defaultArtifactPathConstant,
			Name:                 defaultArtifactNameConstant,
			DestinationDirectory: defaultArtifactDestinationDirectoryConstant,
			Mode:                 ArtifactModeCopy,
		},
		Ancillary: AncillaryConfiguration{
			SDKDirectory:       defaultSDKDirectoryConstant,
			SampleAppDirectory: defaultSampleAppDirectoryConstant,
		},
		Placeholder: PlaceholderConfiguration{
			Token:      defaultPlaceholderTokenConstant,
			Namespace:  defaultPlaceholderNamespaceConstant,
			ArtifactID: defaultPlaceholderArtifactIDConstant,
			Files:      []string{"SampleApp/build.gradle", "README.md"},
		},
		CommitMessageTemplate: defaultCommitMessageTemplateConstant,
		Checklist: []string{
			"Test on a device in release mode.",
			"Sanity check the master branch.",
			"Review the unobfuscated aar and javadocs for any anomalies.",
		},
		NextSteps:     []string{"Commit proguard-data", "Verify and merge back to master"},
		HiddenStreams: []string{"stdout", "stderr", "running"},
	}
}

// DefaultConfigurationValues produces Viper defaults rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	publicKey := joinConfigurationKey(rootKey, publicRepositoryKeyConstant)
	buildKey := joinConfigurationKey(rootKey, buildKeyConstant)
	artifactKey := joinConfigurationKey(rootKey, artifactKeyConstant)
	ancillaryKey := joinConfigurationKey(rootKey, ancillaryKeyConstant)
	placeholderKey := joinConfigurationKey(rootKey, placeholderKeyConstant)

	return map[string]any{
		joinConfigurationKey(rootKey, sourceRepositoryPathKeyConstant):             defaults.SourceRepositoryPath,
		joinConfigurationKey(publicKey, publicRepositoryURLKeyConstant):            defaults.PublicRepository.URL,
		joinConfigurationKey(publicKey, publicRepositoryPathKeyConstant):           defaults.PublicRepository.Path,
		joinConfigurationKey(publicKey, publicRepositoryRemoteNameKeyConstant):     defaults.PublicRepository.RemoteName,
		joinConfigurationKey(publicKey, publicRepositoryBranchKeyConstant):         defaults.PublicRepository.Branch,
		joinConfigurationKey(publicKey, publicRepositoryVerifyRemoteKeyConstant):   defaults.PublicRepository.VerifyRemote,
		joinConfigurationKey(buildKey, buildExecutableKeyConstant):                 defaults.Build.Executable,
		joinConfigurationKey(buildKey, buildArgumentsKeyConstant):                  defaults.Build.Arguments,
		joinConfigurationKey(buildKey, buildUploadArgumentsKeyConstant):            defaults.Build.UploadArguments,
		joinConfigurationKey(buildKey, buildWorkingDirectoryKeyConstant):           defaults.Build.WorkingDirectory,
		joinConfigurationKey(artifactKey, artifactPathKeyConstant):                 defaults.Artifact.Path,
		joinConfigurationKey(artifactKey, artifactNameKeyConstant):                 defaults.Artifact.Name,
		joinConfigurationKey(artifactKey, artifactDestinationDirectoryKeyConstant): defaults.Artifact.DestinationDirectory,
		joinConfigurationKey(artifactKey, artifactModeKeyConstant):                 string(defaults.Artifact.Mode),
		joinConfigurationKey(ancillaryKey, ancillarySDKDirectoryKeyConstant):       defaults.Ancillary.SDKDirectory,
		joinConfigurationKey(ancillaryKey, ancillarySampleAppDirectoryKeyConstant): defaults.Ancillary.SampleAppDirectory,
		joinConfigurationKey(placeholderKey, placeholderTokenKeyConstant):          defaults.Placeholder.Token,
		joinConfigurationKey(placeholderKey, placeholderNamespaceKeyConstant):      defaults.Placeholder.Namespace,
		joinConfigurationKey(placeholderKey, placeholderArtifactIDKeyConstant):     defaults.Placeholder.ArtifactID,
		joinConfigurationKey(placeholderKey, placeholderFilesKeyConstant):          defaults.Placeholder.Files,
		joinConfigurationKey(rootKey, commitMessageTemplateKeyConstant):            defaults.CommitMessageTemplate,
		joinConfigurationKey(rootKey, tagPrefixKeyConstant):                        defaults.TagPrefix,
		joinConfigurationKey(rootKey, checklistKeyConstant):                        defaults.Checklist,
		joinConfigurationKey(rootKey, nextStepsKeyConstant):                        defaults.NextSteps,
		joinConfigurationKey(rootKey, requireCleanSourceKeyConstant):               defaults.RequireCleanSource,
		joinConfigurationKey(rootKey, assumeYesKeyConstant):                        defaults.AssumeYes,
		joinConfigurationKey(rootKey, verboseKeyConstant):                          defaults.Verbose,
		joinConfigurationKey(rootKey, hiddenStreamsKeyConstant):                    defaults.HiddenStreams,
	}
}

// Sanitize trims textual values and drops empty list entries.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.SourceRepositoryPath = strings.TrimSpace(configuration.SourceRepositoryPath)
	sanitized.PublicRepository.URL = strings.TrimSpace(configuration.PublicRepository.URL)
	sanitized.PublicRepository.Path = strings.TrimSpace(configuration.PublicRepository.Path)
	sanitized.PublicRepository.RemoteName = strings.TrimSpace(configuration.PublicRepository.RemoteName)
	sanitized.PublicRepository.Branch = strings.TrimSpace(configuration.PublicRepository.Branch)
	sanitized.Build.Executable = strings.TrimSpace(configuration.Build.Executable)
	sanitized.Build.Arguments = trimEntries(configuration.Build.Arguments)
	sanitized.Build.UploadArguments = trimEntries(configuration.Build.UploadArguments)
	sanitized.Build.WorkingDirectory = strings.TrimSpace(configuration.Build.WorkingDirectory)
	sanitized.Artifact.Path = strings.TrimSpace(configuration.Artifact.Path)
	sanitized.Artifact.Name = strings.TrimSpace(configuration.Artifact.Name)
	sanitized.Artifact.DestinationDirectory = strings.TrimSpace(configuration.Artifact.DestinationDirectory)
	sanitized.Artifact.Mode = ArtifactMode(strings.ToLower(strings.TrimSpace(string(configuration.Artifact.Mode))))
	if len(sanitized.Artifact.Mode) == 0 {
		sanitized.Artifact.Mode = ArtifactModeCopy
	}
	sanitized.Ancillary.SDKDirectory = strings.TrimSpace(configuration.Ancillary.SDKDirectory)
	sanitized.Ancillary.SampleAppDirectory = strings.TrimSpace(configuration.Ancillary.SampleAppDirectory)
	sanitized.Placeholder.Token = strings.TrimSpace(configuration.Placeholder.Token)
	sanitized.Placeholder.Namespace = strings.TrimSpace(configuration.Placeholder.Namespace)
	sanitized.Placeholder.ArtifactID = strings.TrimSpace(configuration.Placeholder.ArtifactID)
	sanitized.Placeholder.Files = trimEntries(configuration.Placeholder.Files)
	sanitized.CommitMessageTemplate = strings.TrimSpace(configuration.CommitMessageTemplate)
	if len(sanitized.CommitMessageTemplate) == 0 {
		sanitized.CommitMessageTemplate = defaultCommitMessageTemplateConstant
	}
	sanitized.TagPrefix = strings.TrimSpace(configuration.TagPrefix)
	sanitized.Checklist = trimEntries(configuration.Checklist)
	sanitized.NextSteps = trimEntries(configuration.NextSteps)
	sanitized.HiddenStreams = trimEntries(configuration.HiddenStreams)
	return sanitized
}

// Validate reports the first input error in the configuration.
func (configuration Configuration) Validate() error {
	if len(configuration.PublicRepository.URL) == 0 {
		return ErrPublicRepositoryURLRequired
	}
	if len(configuration.PublicRepository.Path) == 0 {
		return ErrPublicRepositoryPathRequired
	}
	if _, remoteError := shared.NewRemoteName(configuration.PublicRepository.RemoteName); remoteError != nil {
		return fmt.Errorf(configurationFieldErrorTemplateConstant, remoteError, publicRepositoryRemoteNameKeyConstant)
	}
	if _, branchError := shared.NewBranchName(configuration.PublicRepository.Branch); branchError != nil {
		return fmt.Errorf(configurationFieldErrorTemplateConstant, branchError, publicRepositoryBranchKeyConstant)
	}
	if len(configuration.Build.Executable) == 0 {
		return ErrBuildExecutableRequired
	}
	if len(configuration.Artifact.Path) == 0 {
		return ErrArtifactPathRequired
	}
	switch configuration.Artifact.Mode {
	case ArtifactModeCopy:
		if len(configuration.Artifact.Name) == 0 {
			return ErrArtifactNameRequired
		}
	case ArtifactModeExtract:
	default:
		return fmt.Errorf(artifactModeInvalidTemplateConstant, ErrInvalidArtifactMode, configuration.Artifact.Mode)
	}
	if strings.Count(configuration.CommitMessageTemplate, commitMessageVerbConstant) != 1 {
		return fmt.Errorf(commitTemplateInvalidTemplateConstant, ErrInvalidCommitMessageTemplate, configuration.CommitMessageTemplate)
	}
	return nil
}

// PlaceholderCoordinate returns the dependency coordinate that carries the placeholder token.
func (configuration Configuration) PlaceholderCoordinate() string {
	return configuration.coordinate(configuration.Placeholder.Token)
}

// VersionedCoordinate returns the dependency coordinate for the provided version.
func (configuration Configuration) VersionedCoordinate(version Version) string {
	return configuration.coordinate(version.String())
}

// TagName returns the tag applied for the provided version.
func (configuration Configuration) TagName(version Version) (shared.TagName, error) {
	return shared.NewTagName(configuration.TagPrefix + version.String())
}

// CommitMessage returns the public repository commit message for the provided version.
func (configuration Configuration) CommitMessage(version Version) string {
	return fmt.Sprintf(configuration.CommitMessageTemplate, version.String())
}

// ArtifactFileName returns the published artifact file name for the provided version and extension.
func (configuration Configuration) ArtifactFileName(version Version, extension string) string {
	return configuration.Artifact.Name + "-" + version.String() + extension
}

func (configuration Configuration) coordinate(version string) string {
	segments := make([]string, 0, 3)
	for _, segment := range []string{configuration.Placeholder.Namespace, configuration.Placeholder.ArtifactID} {
		if len(segment) > 0 {
			segments = append(segments, segment)
		}
	}
	segments = append(segments, version)
	return strings.Join(segments, placeholderCoordinateSeparatorConstant)
}

func joinConfigurationKey(prefix string, key string) string {
	if len(prefix) == 0 {
		return key
	}
	return prefix + configurationKeySeparatorConstant + key
}

func trimEntries(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		candidate := strings.TrimSpace(value)
		if len(candidate) == 0 {
			continue
		}
		trimmed = append(trimmed, candidate)
	}
	return trimmed
}

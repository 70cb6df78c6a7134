package release

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/pubrelease/internal/workspace"
)

const (
	publishProgressTemplateConstant       = "extracting sdk %s to public repo"
	publishArtifactMessageConstant        = "artifact placed"
	publishPlaceholderMessageConstant     = "version placeholder rewritten"
	publishCommittedMessageConstant       = "public repository committed"
	publishDestinationPermissionsConstant = 0o755
	publishStageErrorTemplateConstant     = "unable to %s: %w"
	logFieldArtifactConstant              = "artifact"
	logFieldFileConstant                  = "file"
	logFieldReplacementsConstant          = "replacements"
	stageClearTreeConstant                = "clear public working tree"
	stageResolveArtifactConstant          = "resolve build artifact"
	stageCopyArtifactConstant             = "copy build artifact"
	stageExtractArtifactConstant          = "extract build artifact"
	stageCopySDKConstant                  = "copy sdk directory"
	stageCopySampleAppConstant            = "copy sample app"
	stageRewritePlaceholderConstant       = "rewrite version placeholder"
	stageCommitConstant                   = "commit public repository"
)

// PublishStep replaces the public working tree with the release artifact and ancillary files and commits it.
type PublishStep struct {
	environment *stepEnvironment
}

// Name identifies the step.
func (step PublishStep) Name() StepName {
	return StepPublish
}

// Run places the artifact, copies the SDK files, rewrites version placeholders and commits.
func (step PublishStep) Run(executionContext context.Context, state *State, _ Approval) (Outcome, error) {
	version, versionError := step.environment.version(executionContext, state)
	if versionError != nil {
		return Outcome{}, versionError
	}
	sourceRoot, sourceError := step.environment.sourceRoot(executionContext, state)
	if sourceError != nil {
		return Outcome{}, sourceError
	}
	publicRoot, publicError := step.environment.publicRoot(executionContext, state)
	if publicError != nil {
		return Outcome{}, publicError
	}

	configuration := step.environment.configuration
	step.environment.reporter.Progress(publishProgressTemplateConstant, version)

	artifactPath, artifactError := workspace.ResolveArtifact(sourceRoot, configuration.Artifact.Path)
	if artifactError != nil {
		return Outcome{}, fmt.Errorf(publishStageErrorTemplateConstant, stageResolveArtifactConstant, artifactError)
	}

	if _, clearError := workspace.ClearWorkingTree(publicRoot); clearError != nil {
		return Outcome{}, fmt.Errorf(publishStageErrorTemplateConstant, stageClearTreeConstant, clearError)
	}

	publishedArtifact, placeError := step.placeArtifact(artifactPath, publicRoot, version)
	if placeError != nil {
		return Outcome{}, placeError
	}
	state.PublishedArtifact = publishedArtifact
	step.environment.logger.Info(publishArtifactMessageConstant, zap.String(logFieldArtifactConstant, publishedArtifact))

	if len(configuration.Ancillary.SDKDirectory) > 0 {
		if copyError := workspace.CopyDirectoryContents(filepath.Join(sourceRoot, configuration.Ancillary.SDKDirectory), publicRoot); copyError != nil {
			return Outcome{}, fmt.Errorf(publishStageErrorTemplateConstant, stageCopySDKConstant, copyError)
		}
	}

	if len(configuration.Ancillary.SampleAppDirectory) > 0 {
		if _, copyError := workspace.CopyDirectory(filepath.Join(sourceRoot, configuration.Ancillary.SampleAppDirectory), publicRoot); copyError != nil {
			return Outcome{}, fmt.Errorf(publishStageErrorTemplateConstant, stageCopySampleAppConstant, copyError)
		}
	}

	if len(configuration.Placeholder.Files) > 0 && len(configuration.Placeholder.Token) > 0 {
		replacements, replaceError := workspace.ReplaceInFiles(publicRoot, configuration.Placeholder.Files, configuration.PlaceholderCoordinate(), configuration.VersionedCoordinate(version))
		if replaceError != nil {
			return Outcome{}, fmt.Errorf(publishStageErrorTemplateConstant, stageRewritePlaceholderConstant, replaceError)
		}
		for _, replacement := range replacements {
			step.environment.logger.Debug(publishPlaceholderMessageConstant, zap.String(logFieldFileConstant, replacement.File), zap.Int(logFieldReplacementsConstant, replacement.Count))
		}
	}

	commitSequence := [][]string{
		{"add", "."},
		{"add", "-u", "."},
		{"commit", "-am", configuration.CommitMessage(version)},
	}
	for _, arguments := range commitSequence {
		if _, commandError := step.environment.git(executionContext, publicRoot, arguments...); commandError != nil {
			return Outcome{}, fmt.Errorf(publishStageErrorTemplateConstant, stageCommitConstant, commandError)
		}
	}
	step.environment.logger.Info(publishCommittedMessageConstant, zap.String(logFieldPublicRepositoryConstant, publicRoot), zap.String(logFieldVersionConstant, version.String()))
	return Completed(), nil
}

func (step PublishStep) placeArtifact(artifactPath string, publicRoot string, version Version) (string, error) {
	artifactConfiguration := step.environment.configuration.Artifact
	destinationDirectory := filepath.Join(publicRoot, artifactConfiguration.DestinationDirectory)

	if artifactConfiguration.Mode == ArtifactModeExtract {
		if _, extractError := workspace.ExtractArchive(artifactPath, destinationDirectory); extractError != nil {
			return "", fmt.Errorf(publishStageErrorTemplateConstant, stageExtractArtifactConstant, extractError)
		}
		return relativeToRoot(publicRoot, destinationDirectory), nil
	}

	if mkdirError := step.environment.fileSystem.MkdirAll(destinationDirectory, publishDestinationPermissionsConstant); mkdirError != nil {
		return "", fmt.Errorf(publishStageErrorTemplateConstant, stageCopyArtifactConstant, mkdirError)
	}
	destinationPath := filepath.Join(destinationDirectory, step.environment.configuration.ArtifactFileName(version, workspace.ArtifactExtension(artifactPath)))
	if copyError := workspace.CopyFile(artifactPath, destinationPath); copyError != nil {
		return "", fmt.Errorf(publishStageErrorTemplateConstant, stageCopyArtifactConstant, copyError)
	}
	return relativeToRoot(publicRoot, destinationPath), nil
}

func relativeToRoot(root string, target string) string {
	relativePath, relativeError := filepath.Rel(root, target)
	if relativeError != nil {
		return target
	}
	return relativePath
}

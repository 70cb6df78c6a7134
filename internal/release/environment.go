package release

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/pubrelease/internal/execshell"
	"github.com/temirov/pubrelease/internal/gitrepo"
	"github.com/temirov/pubrelease/internal/repos/shared"
	pathutils "github.com/temirov/pubrelease/internal/utils/path"
)

const (
	sourceRootErrorTemplateConstant  = "unable to resolve source repository: %w"
	publicRootErrorTemplateConstant  = "unable to resolve public repository path: %w"
	branchErrorTemplateConstant      = "unable to determine release branch: %w"
	tagNameErrorTemplateConstant     = "unable to derive tag for version %s: %w"
	versionResolvedMessageConstant   = "release version resolved"
	logFieldVersionConstant          = "version"
	logFieldTagConstant              = "tag"
	logFieldBranchConstant           = "branch"
	logFieldSourceRepositoryConstant = "source_repository"
	logFieldPublicRepositoryConstant = "public_repository"
)

// stepEnvironment bundles the configuration and collaborators shared by every step.
type stepEnvironment struct {
	configuration Configuration
	executor      shared.CommandExecutor
	repositories  shared.GitRepositoryManager
	fileSystem    shared.FileSystem
	reporter      Reporter
	logger        *zap.Logger
	homeExpander  *pathutils.HomeExpander
}

func (environment *stepEnvironment) sourceRoot(executionContext context.Context, state *State) (string, error) {
	if len(state.SourceRepositoryPath) > 0 {
		return state.SourceRepositoryPath, nil
	}

	var candidate string
	if len(environment.configuration.SourceRepositoryPath) > 0 {
		candidate = environment.homeExpander.Expand(environment.configuration.SourceRepositoryPath)
	} else {
		topLevel, topLevelError := environment.repositories.TopLevel(executionContext, "")
		if topLevelError != nil {
			return "", fmt.Errorf(sourceRootErrorTemplateConstant, topLevelError)
		}
		candidate = topLevel
	}

	absolutePath, absoluteError := environment.fileSystem.Abs(candidate)
	if absoluteError != nil {
		return "", fmt.Errorf(sourceRootErrorTemplateConstant, absoluteError)
	}
	state.SourceRepositoryPath = absolutePath
	return absolutePath, nil
}

func (environment *stepEnvironment) publicRoot(executionContext context.Context, state *State) (string, error) {
	if len(state.PublicRepositoryPath) > 0 {
		return state.PublicRepositoryPath, nil
	}

	sourceRoot, sourceError := environment.sourceRoot(executionContext, state)
	if sourceError != nil {
		return "", sourceError
	}

	absolutePath, absoluteError := environment.fileSystem.Abs(environment.homeExpander.ResolveAgainst(sourceRoot, environment.configuration.PublicRepository.Path))
	if absoluteError != nil {
		return "", fmt.Errorf(publicRootErrorTemplateConstant, absoluteError)
	}
	state.PublicRepositoryPath = absolutePath
	return absolutePath, nil
}

func (environment *stepEnvironment) version(executionContext context.Context, state *State) (Version, error) {
	if len(state.Version) > 0 {
		return state.Version, nil
	}

	sourceRoot, sourceError := environment.sourceRoot(executionContext, state)
	if sourceError != nil {
		return "", sourceError
	}

	branchName, branchError := environment.repositories.GetCurrentBranch(executionContext, sourceRoot)
	if branchError != nil {
		return "", fmt.Errorf(branchErrorTemplateConstant, branchError)
	}

	version, versionError := ResolveVersion(branchName)
	if versionError != nil {
		return "", versionError
	}

	tagName, tagError := environment.configuration.TagName(version)
	if tagError != nil {
		return "", fmt.Errorf(tagNameErrorTemplateConstant, version, tagError)
	}

	state.Version = version
	state.TagName = tagName
	environment.logger.Info(
		versionResolvedMessageConstant,
		zap.String(logFieldBranchConstant, branchName),
		zap.String(logFieldVersionConstant, version.String()),
		zap.String(logFieldTagConstant, tagName.String()),
		zap.String(logFieldSourceRepositoryConstant, sourceRoot),
	)
	return version, nil
}

func (environment *stepEnvironment) git(executionContext context.Context, workingDirectory string, arguments ...string) (execshell.ExecutionResult, error) {
	return environment.executor.ExecuteGit(executionContext, gitrepo.NewCommandDetails(workingDirectory, arguments...))
}

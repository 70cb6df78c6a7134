package release

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"github.com/temirov/pubrelease/internal/execshell"
	"github.com/temirov/pubrelease/internal/repos/shared"
)

func TestSetupSkipsCloneWhenRepositoryExists(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	publicRoot := filepath.Join(sourceRoot, "distribution-repo")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(publicRoot, ".git"), 0o755))

	executor := newSimulatedGitExecutor(sourceRoot)
	executor.remoteURLs[publicRoot] = "https://github.com/card-io/card.io-Android-SDK"
	service, reporter := newTestService(testInstance, testConfiguration(), executor, &scriptedPrompter{})

	result, setupError := service.Setup(context.Background())
	require.NoError(testInstance, setupError)
	require.Equal(testInstance, publicRoot, result.PublicRepositoryPath)
	require.False(testInstance, result.PublicCloneCreated)
	require.Empty(testInstance, reporter.progress)
	for _, details := range executor.gitCommands {
		require.NotEqual(testInstance, "clone", details.Arguments[0])
	}
}

func TestSetupClonesMissingRepository(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	executor := newSimulatedGitExecutor(sourceRoot)
	configuration := testConfiguration()
	configuration.PublicRepository.Path = filepath.Join("..", "mirrors", "public-sdk")
	service, reporter := newTestService(testInstance, configuration, executor, &scriptedPrompter{})

	result, setupError := service.Setup(context.Background())
	require.NoError(testInstance, setupError)

	expectedPublicRoot := filepath.Join(filepath.Dir(sourceRoot), "mirrors", "public-sdk")
	require.Equal(testInstance, expectedPublicRoot, result.PublicRepositoryPath)
	require.True(testInstance, result.PublicCloneCreated)
	require.Contains(testInstance, executor.commandsIn(sourceRoot), "clone --origin public "+testPublicURLConstant+" "+expectedPublicRoot)
	require.Equal(testInstance, []string{"Creating public SDK repo"}, reporter.progress)
	require.DirExists(testInstance, filepath.Join(expectedPublicRoot, ".git"))
}

func TestSetupRejectsForeignRemote(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	publicRoot := filepath.Join(sourceRoot, "distribution-repo")
	require.NoError(testInstance, os.MkdirAll(publicRoot, 0o755))

	executor := newSimulatedGitExecutor(sourceRoot)
	executor.remoteURLs[publicRoot] = "git@github.com:someone/fork.git"
	service, _ := newTestService(testInstance, testConfiguration(), executor, &scriptedPrompter{})

	_, setupError := service.Setup(context.Background())
	require.ErrorIs(testInstance, setupError, ErrPublicRepositoryRemoteMismatch)
	require.ErrorContains(testInstance, setupError, "release step setup failed")
}

func TestSetupSkipsRemoteCheckWhenDisabled(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	publicRoot := filepath.Join(sourceRoot, "distribution-repo")
	require.NoError(testInstance, os.MkdirAll(publicRoot, 0o755))

	executor := newSimulatedGitExecutor(sourceRoot)
	configuration := testConfiguration()
	configuration.PublicRepository.VerifyRemote = false
	service, _ := newTestService(testInstance, configuration, executor, &scriptedPrompter{})

	_, setupError := service.Setup(context.Background())
	require.NoError(testInstance, setupError)
	require.Empty(testInstance, executor.commandsIn(publicRoot))
}

func TestSetupRejectsFileAtPublicPath(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	writeFixtureFile(testInstance, filepath.Join(sourceRoot, "distribution-repo"), "not a repository")

	service, _ := newTestService(testInstance, testConfiguration(), newSimulatedGitExecutor(sourceRoot), &scriptedPrompter{})

	_, setupError := service.Setup(context.Background())
	require.ErrorIs(testInstance, setupError, ErrPublicRepositoryNotDirectory)
}

func TestResetRunsCommandSequenceAfterConfirmation(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	publicRoot := filepath.Join(sourceRoot, "distribution-repo")
	require.NoError(testInstance, os.MkdirAll(publicRoot, 0o755))

	executor := newSimulatedGitExecutor(sourceRoot)
	executor.remoteURLs[publicRoot] = testPublicURLConstant
	prompter := &scriptedPrompter{responses: []shared.ConfirmationResult{{Confirmed: true}}}
	service, reporter := newTestService(testInstance, testConfiguration(), executor, prompter)

	_, resetError := service.Reset(context.Background(), ResetOptions{Warn: true})
	require.NoError(testInstance, resetError)
	require.Equal(testInstance, []string{"Proceed?"}, prompter.prompts)
	require.Equal(testInstance, []string{resetWarningMessageConstant}, reporter.warnings)
	require.Equal(testInstance, []string{
		"remote get-url public",
		"checkout master",
		"fetch public --prune",
		"reset --hard public/master",
		"clean -x -d -f",
	}, executor.commandsIn(publicRoot))
}

func TestResetDeclineLeavesRepositoryUntouched(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	publicRoot := filepath.Join(sourceRoot, "distribution-repo")
	require.NoError(testInstance, os.MkdirAll(publicRoot, 0o755))

	executor := newSimulatedGitExecutor(sourceRoot)
	executor.remoteURLs[publicRoot] = testPublicURLConstant
	service, _ := newTestService(testInstance, testConfiguration(), executor, &scriptedPrompter{})

	_, resetError := service.Reset(context.Background(), ResetOptions{Warn: true})
	var declined ConfirmationDeclinedError
	require.ErrorAs(testInstance, resetError, &declined)
	require.Equal(testInstance, StepReset, declined.Step)
	require.Equal(testInstance, []string{"remote get-url public"}, executor.commandsIn(publicRoot))
}

func TestResetWithoutWarningDoesNotPrompt(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	publicRoot := filepath.Join(sourceRoot, "distribution-repo")
	require.NoError(testInstance, os.MkdirAll(publicRoot, 0o755))

	executor := newSimulatedGitExecutor(sourceRoot)
	executor.remoteURLs[publicRoot] = testPublicURLConstant
	prompter := &scriptedPrompter{}
	service, _ := newTestService(testInstance, testConfiguration(), executor, prompter)

	_, resetError := service.Reset(context.Background(), ResetOptions{Warn: false})
	require.NoError(testInstance, resetError)
	require.Empty(testInstance, prompter.prompts)
	commands := executor.commandsIn(publicRoot)
	require.Equal(testInstance, "clean -x -d -f", commands[len(commands)-1])
}

func TestBuildAppendsUploadArguments(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	executor := newSimulatedGitExecutor(sourceRoot)
	configuration := testConfiguration()
	configuration.Build.WorkingDirectory = "card.io"
	service, reporter := newTestService(testInstance, configuration, executor, &scriptedPrompter{})

	result, buildError := service.Build(context.Background(), BuildOptions{UploadArchives: true})
	require.NoError(testInstance, buildError)
	require.True(testInstance, result.UploadedArchives)
	require.Len(testInstance, executor.toolCommands, 1)
	require.Equal(testInstance, "./gradlew", executor.toolCommands[0].executable)
	require.Equal(testInstance, []string{"clean", ":card.io:assembleRelease", "releaseDoc", ":card.io:uploadArchives"}, executor.toolCommands[0].details.Arguments)
	require.Equal(testInstance, filepath.Join(sourceRoot, "card.io"), executor.toolCommands[0].details.WorkingDirectory)
	require.Equal(testInstance, []string{"running ./gradlew clean :card.io:assembleRelease releaseDoc :card.io:uploadArchives"}, reporter.progress)
}

func TestBuildFailureCarriesExitCode(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	executor := newSimulatedGitExecutor(sourceRoot)
	executor.toolFailure = execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: "./gradlew"},
		Result:  execshell.ExecutionResult{ExitCode: 3, StandardError: "FAILURE: Build failed with an exception."},
	}
	service, _ := newTestService(testInstance, testConfiguration(), executor, &scriptedPrompter{})

	_, buildError := service.Build(context.Background(), BuildOptions{})
	var buildFailure BuildFailedError
	require.ErrorAs(testInstance, buildError, &buildFailure)
	require.Equal(testInstance, 3, buildFailure.ExitCode)
	require.Equal(testInstance, []string{"clean", ":card.io:assembleRelease", "releaseDoc"}, executor.toolCommands[0].details.Arguments)
}

func TestTagStepCreatesMissingTag(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	executor := newSimulatedGitExecutor(sourceRoot)
	service, _ := newTestService(testInstance, testConfiguration(), executor, &scriptedPrompter{})

	step := TagStep{environment: service.environment, target: TagTargetSource}
	outcome, tagError := step.Run(context.Background(), &State{}, Approval{})
	require.NoError(testInstance, tagError)
	require.Equal(testInstance, OutcomeOK, outcome.Kind)
	require.Contains(testInstance, executor.commandsIn(sourceRoot), "tag 1.4.0")
}

func TestTagStepRequiresApprovalToOverwrite(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	executor := newSimulatedGitExecutor(sourceRoot)
	executor.tags[sourceRoot] = []string{"1.3.0", testVersionConstant}
	service, _ := newTestService(testInstance, testConfiguration(), executor, &scriptedPrompter{})

	step := TagStep{environment: service.environment, target: TagTargetSource}
	state := &State{}

	outcome, tagError := step.Run(context.Background(), state, Approval{})
	require.NoError(testInstance, tagError)
	require.Equal(testInstance, OutcomeNeedsConfirmation, outcome.Kind)
	require.Equal(testInstance, "Proceed with overwriting tag?", outcome.Prompt)
	require.Equal(testInstance, "Tag 1.4.0 already present in "+sourceRoot+".", outcome.Warning)
	require.NotContains(testInstance, executor.commandsIn(sourceRoot), "tag -f 1.4.0")

	outcome, tagError = step.Run(context.Background(), state, Approval{Granted: true})
	require.NoError(testInstance, tagError)
	require.Equal(testInstance, OutcomeOK, outcome.Kind)
	require.Contains(testInstance, executor.commandsIn(sourceRoot), "tag -f 1.4.0")
}

func TestChecklistAsksEveryItem(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	configuration := testConfiguration()
	configuration.Checklist = []string{"Test on a device in release mode.", "Sanity check the master branch."}
	prompter := &scriptedPrompter{responses: []shared.ConfirmationResult{{Confirmed: true}, {Confirmed: true}}}
	service, _ := newTestService(testInstance, configuration, newSimulatedGitExecutor(sourceRoot), prompter)

	pipeline, pipelineError := NewPipeline(PipelineDependencies{Prompter: prompter}, ChecklistStep{environment: service.environment})
	require.NoError(testInstance, pipelineError)

	_, runError := pipeline.Run(context.Background(), &State{})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, configuration.Checklist, prompter.prompts)
}

func TestChecklistApplyToAllConfirmsRemainingItems(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	configuration := testConfiguration()
	configuration.Checklist = []string{"first", "second", "third"}
	prompter := &scriptedPrompter{responses: []shared.ConfirmationResult{{Confirmed: true, ApplyToAll: true}}}
	service, _ := newTestService(testInstance, configuration, newSimulatedGitExecutor(sourceRoot), prompter)

	pipeline, pipelineError := NewPipeline(PipelineDependencies{Prompter: prompter}, ChecklistStep{environment: service.environment})
	require.NoError(testInstance, pipelineError)

	state := &State{}
	_, runError := pipeline.Run(context.Background(), state)
	require.NoError(testInstance, runError)
	require.Equal(testInstance, []string{"first"}, prompter.prompts)
	require.Equal(testInstance, 3, state.ChecklistConfirmed)
}

func TestChecklistRejectsDirtySource(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	executor := newSimulatedGitExecutor(sourceRoot)
	executor.dirtySource = true
	configuration := testConfiguration()
	configuration.RequireCleanSource = true
	service, _ := newTestService(testInstance, configuration, executor, &scriptedPrompter{})

	step := ChecklistStep{environment: service.environment}
	_, checklistError := step.Run(context.Background(), &State{}, Approval{})
	require.ErrorIs(testInstance, checklistError, ErrSourceRepositoryDirty)
}

func TestPublishExtractsArchive(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	artifactPath := filepath.Join(sourceRoot, "card.io", "build", "outputs", "aar", "card.io-release.aar")
	writeFixtureArchive(testInstance, artifactPath, map[string]string{"classes.jar": "jar", "AndroidManifest.xml": "<manifest/>"})

	publicRoot := filepath.Join(sourceRoot, "distribution-repo")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(publicRoot, ".git"), 0o755))
	writeFixtureFile(testInstance, filepath.Join(publicRoot, "stale.txt"), "old release")

	executor := newSimulatedGitExecutor(sourceRoot)
	configuration := testConfiguration()
	configuration.Artifact.Mode = ArtifactModeExtract
	configuration.Artifact.Path = "card.io/build/**/*.aar"
	service, _ := newTestService(testInstance, configuration, executor, &scriptedPrompter{})

	state := &State{}
	outcome, publishError := PublishStep{environment: service.environment}.Run(context.Background(), state, Approval{})
	require.NoError(testInstance, publishError)
	require.Equal(testInstance, OutcomeOK, outcome.Kind)
	require.Equal(testInstance, "aars", state.PublishedArtifact)
	require.FileExists(testInstance, filepath.Join(publicRoot, "aars", "classes.jar"))
	require.NoFileExists(testInstance, filepath.Join(publicRoot, "stale.txt"))
	require.DirExists(testInstance, filepath.Join(publicRoot, ".git"))
}

func TestPublishMissingArtifactLeavesTreeIntact(testInstance *testing.T) {
	sourceRoot := sourceFixture(testInstance)
	publicRoot := filepath.Join(sourceRoot, "distribution-repo")
	writeFixtureFile(testInstance, filepath.Join(publicRoot, "README.md"), "previous release")

	executor := newSimulatedGitExecutor(sourceRoot)
	configuration := testConfiguration()
	configuration.Artifact.Path = "card.io/build/outputs/aar/missing.aar"
	service, _ := newTestService(testInstance, configuration, executor, &scriptedPrompter{})

	_, publishError := PublishStep{environment: service.environment}.Run(context.Background(), &State{}, Approval{})
	require.ErrorIs(testInstance, publishError, ErrArtifactMissing)
	require.FileExists(testInstance, filepath.Join(publicRoot, "README.md"))
	require.Empty(testInstance, executor.commandsIn(publicRoot))
}

func writeFixtureArchive(testInstance *testing.T, archivePath string, entries map[string]string) {
	testInstance.Helper()
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(archivePath), 0o755))
	archiveFile, createError := os.Create(archivePath)
	require.NoError(testInstance, createError)

	archiveWriter := zip.NewWriter(archiveFile)
	for entryName, entryContent := range entries {
		entryWriter, entryError := archiveWriter.Create(entryName)
		require.NoError(testInstance, entryError)
		_, writeError := entryWriter.Write([]byte(entryContent))
		require.NoError(testInstance, writeError)
	}
	require.NoError(testInstance, archiveWriter.Close())
	require.NoError(testInstance, archiveFile.Close())
}

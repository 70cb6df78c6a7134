package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

const (
	archiveEntryEscapesMessage         = "archive entry escapes the destination"
	archiveOpenErrorTemplateConstant   = "unable to open archive %s: %w"
	archiveEntryErrorTemplateConstant  = "unable to extract %s from %s: %w"
	archiveEscapeErrorTemplateConstant = "%w: %s"
	defaultExtractedFileModeConstant   = 0o644
)

// ErrArchiveEntryEscapes indicates an archive entry whose path resolves outside the destination.
var ErrArchiveEntryEscapes = errors.New(archiveEntryEscapesMessage)

// ExtractArchive unpacks a zip archive into destination and returns the extracted entry names.
// Entries that would be written outside destination are rejected before anything is written.
func ExtractArchive(archivePath string, destination string) ([]string, error) {
	archiveReader, openError := zip.OpenReader(archivePath)
	if openError != nil {
		return nil, fmt.Errorf(archiveOpenErrorTemplateConstant, archivePath, openError)
	}
	defer archiveReader.Close()

	cleanDestination := filepath.Clean(destination)
	for _, archiveFile := range archiveReader.File {
		if _, targetError := archiveTargetPath(cleanDestination, archiveFile.Name); targetError != nil {
			return nil, targetError
		}
	}

	extractedNames := make([]string, 0, len(archiveReader.File))
	for _, archiveFile := range archiveReader.File {
		if extractError := extractArchiveFile(archiveFile, cleanDestination); extractError != nil {
			return extractedNames, fmt.Errorf(archiveEntryErrorTemplateConstant, archiveFile.Name, archivePath, extractError)
		}
		extractedNames = append(extractedNames, archiveFile.Name)
	}
	return extractedNames, nil
}

func archiveTargetPath(destination string, entryName string) (string, error) {
	targetPath := filepath.Join(destination, filepath.FromSlash(entryName))
	if targetPath != destination && !strings.HasPrefix(targetPath, destination+string(os.PathSeparator)) {
		return "", fmt.Errorf(archiveEscapeErrorTemplateConstant, ErrArchiveEntryEscapes, entryName)
	}
	return targetPath, nil
}

func extractArchiveFile(archiveFile *zip.File, destination string) error {
	targetPath, targetError := archiveTargetPath(destination, archiveFile.Name)
	if targetError != nil {
		return targetError
	}

	if archiveFile.FileInfo().IsDir() {
		return os.MkdirAll(targetPath, directoryPermissionsConstant)
	}

	if mkdirError := os.MkdirAll(filepath.Dir(targetPath), directoryPermissionsConstant); mkdirError != nil {
		return mkdirError
	}

	entryReader, openError := archiveFile.Open()
	if openError != nil {
		return openError
	}
	defer entryReader.Close()

	fileMode := archiveFile.Mode().Perm()
	if fileMode == 0 {
		fileMode = defaultExtractedFileModeConstant
	}

	targetFile, createError := os.OpenFile(targetPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if createError != nil {
		return createError
	}
	if _, copyError := io.Copy(targetFile, entryReader); copyError != nil {
		targetFile.Close()
		return copyError
	}
	return targetFile.Close()
}

package workspace

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	directoryPermissionsConstant    = 0o755
	copyOpenErrorTemplateConstant   = "unable to open %s: %w"
	copyCreateErrorTemplateConstant = "unable to create %s: %w"
	copyWriteErrorTemplateConstant  = "unable to copy %s to %s: %w"
	copyWalkErrorTemplateConstant   = "unable to copy directory %s: %w"
	copyLinkErrorTemplateConstant   = "unable to copy symbolic link %s: %w"
	copySourceErrorTemplateConstant = "unable to read copy source %s: %w"
)

// CopyFile copies a regular file, keeping its permission bits and creating missing parent directories.
func CopyFile(sourcePath string, destinationPath string) error {
	sourceFile, openError := os.Open(sourcePath)
	if openError != nil {
		return fmt.Errorf(copyOpenErrorTemplateConstant, sourcePath, openError)
	}
	defer sourceFile.Close()

	sourceInfo, statError := sourceFile.Stat()
	if statError != nil {
		return fmt.Errorf(copySourceErrorTemplateConstant, sourcePath, statError)
	}
	if sourceInfo.IsDir() {
		return fmt.Errorf(notDirectoryErrorTemplateConstant, ErrNotRegularFile, sourcePath)
	}

	if mkdirError := os.MkdirAll(filepath.Dir(destinationPath), directoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(copyCreateErrorTemplateConstant, filepath.Dir(destinationPath), mkdirError)
	}

	destinationFile, createError := os.OpenFile(destinationPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, sourceInfo.Mode().Perm())
	if createError != nil {
		return fmt.Errorf(copyCreateErrorTemplateConstant, destinationPath, createError)
	}

	if _, copyError := io.Copy(destinationFile, sourceFile); copyError != nil {
		destinationFile.Close()
		return fmt.Errorf(copyWriteErrorTemplateConstant, sourcePath, destinationPath, copyError)
	}
	if closeError := destinationFile.Close(); closeError != nil {
		return fmt.Errorf(copyWriteErrorTemplateConstant, sourcePath, destinationPath, closeError)
	}
	return os.Chmod(destinationPath, sourceInfo.Mode().Perm())
}

// CopyDirectoryContents copies every entry below sourceDirectory into destinationDirectory, dotfiles included.
// Existing files are overwritten.
func CopyDirectoryContents(sourceDirectory string, destinationDirectory string) error {
	sourceInfo, statError := os.Stat(sourceDirectory)
	if statError != nil {
		return fmt.Errorf(copySourceErrorTemplateConstant, sourceDirectory, statError)
	}
	if !sourceInfo.IsDir() {
		return fmt.Errorf(notDirectoryErrorTemplateConstant, ErrNotDirectory, sourceDirectory)
	}

	walkError := filepath.WalkDir(sourceDirectory, func(currentPath string, entry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return entryError
		}
		relativePath, relativeError := filepath.Rel(sourceDirectory, currentPath)
		if relativeError != nil {
			return relativeError
		}
		targetPath := filepath.Join(destinationDirectory, relativePath)

		switch {
		case entry.IsDir():
			return os.MkdirAll(targetPath, directoryPermissionsConstant)
		case entry.Type()&fs.ModeSymlink != 0:
			return copySymbolicLink(currentPath, targetPath)
		default:
			return CopyFile(currentPath, targetPath)
		}
	})
	if walkError != nil {
		return fmt.Errorf(copyWalkErrorTemplateConstant, sourceDirectory, walkError)
	}
	return nil
}

// CopyDirectory copies sourceDirectory itself under destinationParent, keeping its base name.
func CopyDirectory(sourceDirectory string, destinationParent string) (string, error) {
	destinationDirectory := filepath.Join(destinationParent, filepath.Base(filepath.Clean(sourceDirectory)))
	if copyError := CopyDirectoryContents(sourceDirectory, destinationDirectory); copyError != nil {
		return "", copyError
	}
	return destinationDirectory, nil
}

func copySymbolicLink(sourcePath string, destinationPath string) error {
	linkTarget, readError := os.Readlink(sourcePath)
	if readError != nil {
		return fmt.Errorf(copyLinkErrorTemplateConstant, sourcePath, readError)
	}
	if removeError := os.RemoveAll(destinationPath); removeError != nil {
		return fmt.Errorf(copyLinkErrorTemplateConstant, sourcePath, removeError)
	}
	if mkdirError := os.MkdirAll(filepath.Dir(destinationPath), directoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(copyLinkErrorTemplateConstant, sourcePath, mkdirError)
	}
	if linkError := os.Symlink(linkTarget, destinationPath); linkError != nil {
		return fmt.Errorf(copyLinkErrorTemplateConstant, sourcePath, linkError)
	}
	return nil
}

package gitrepo

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

const (
	sshSchemeConstant                   = "ssh"
	httpsSchemeConstant                 = "https"
	httpSchemeConstant                  = "http"
	fileSchemeConstant                  = "file"
	schemeSeparatorConstant             = "://"
	scpUserDelimiterConstant            = "@"
	scpPathDelimiterConstant            = ":"
	pathSeparatorConstant               = "/"
	gitSuffixConstant                   = ".git"
	defaultSSHUserConstant              = "git"
	remoteURLParseErrorTemplateConstant = "%s: %s"
	invalidRemoteURLMessageConstant     = "invalid remote url"
	unknownProtocolMessageConstant      = "unsupported remote protocol"
	scpRemoteTemplateConstant           = "%s@%s:%s/%s.git"
	httpsRemoteTemplateConstant         = "https://%s/%s/%s.git"
	fileRemoteTemplateConstant          = "file://%s"
)

// RemoteProtocol enumerates supported git remote protocols.
type RemoteProtocol string

// Supported remote protocols.
const (
	RemoteProtocolSSH   RemoteProtocol = RemoteProtocol(sshSchemeConstant)
	RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol(httpsSchemeConstant)
	RemoteProtocolFile  RemoteProtocol = RemoteProtocol(fileSchemeConstant)
)

// RemoteURL represents a structured git remote URL. File remotes carry their cleaned path in Path and
// leave Host, Owner and Repository empty.
type RemoteURL struct {
	Protocol   RemoteProtocol
	User       string
	Host       string
	Owner      string
	Repository string
	Path       string
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// UnsupportedProtocolError indicates the provided protocol cannot be formatted.
type UnsupportedProtocolError struct {
	Protocol RemoteProtocol
}

// Error describes the unsupported protocol.
func (protocolError UnsupportedProtocolError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, protocolError.Protocol, unknownProtocolMessageConstant)
}

// ParseRemoteURL converts a textual remote into a structured representation. It accepts scp-like
// "user@host:owner/repo.git", "ssh://user@host[:port]/owner/repo", "http(s)://host/owner/repo",
// "file:///path" and absolute local paths.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	if strings.Contains(trimmedRemote, schemeSeparatorConstant) {
		return parseSchemeRemote(trimmedRemote)
	}
	if filepath.IsAbs(trimmedRemote) {
		return RemoteURL{Protocol: RemoteProtocolFile, Path: filepath.Clean(trimmedRemote)}, nil
	}
	return parseSCPRemote(trimmedRemote)
}

func parseSchemeRemote(remote string) (RemoteURL, error) {
	parsedURL, parseError := url.Parse(remote)
	if parseError != nil {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}

	switch strings.ToLower(parsedURL.Scheme) {
	case fileSchemeConstant:
		if len(parsedURL.Path) == 0 {
			return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
		}
		return RemoteURL{Protocol: RemoteProtocolFile, Path: filepath.Clean(parsedURL.Path)}, nil
	case sshSchemeConstant:
		owner, repository, splitError := splitOwnerAndRepository(remote, parsedURL.Path)
		if splitError != nil {
			return RemoteURL{}, splitError
		}
		user := defaultSSHUserConstant
		if parsedURL.User != nil && len(parsedURL.User.Username()) > 0 {
			user = parsedURL.User.Username()
		}
		return RemoteURL{Protocol: RemoteProtocolSSH, User: user, Host: parsedURL.Hostname(), Owner: owner, Repository: repository}, nil
	case httpsSchemeConstant, httpSchemeConstant:
		owner, repository, splitError := splitOwnerAndRepository(remote, parsedURL.Path)
		if splitError != nil {
			return RemoteURL{}, splitError
		}
		return RemoteURL{Protocol: RemoteProtocolHTTPS, Host: parsedURL.Hostname(), Owner: owner, Repository: repository}, nil
	default:
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: unknownProtocolMessageConstant}
	}
}

func parseSCPRemote(remote string) (RemoteURL, error) {
	userAndHost, repositoryPath, found := strings.Cut(remote, scpPathDelimiterConstant)
	if !found {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	user := defaultSSHUserConstant
	host := userAndHost
	if userPart, hostPart, hasUser := strings.Cut(userAndHost, scpUserDelimiterConstant); hasUser {
		user = userPart
		host = hostPart
	}
	if len(host) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	owner, repository, splitError := splitOwnerAndRepository(remote, repositoryPath)
	if splitError != nil {
		return RemoteURL{}, splitError
	}
	return RemoteURL{Protocol: RemoteProtocolSSH, User: user, Host: host, Owner: owner, Repository: repository}, nil
}

// splitOwnerAndRepository takes the final path segment as the repository and everything before it as the owner.
func splitOwnerAndRepository(input string, repositoryPath string) (string, string, error) {
	trimmedPath := strings.Trim(path.Clean(pathSeparatorConstant+repositoryPath), pathSeparatorConstant)
	ownerPath, repositoryName := path.Split(trimmedPath)
	ownerPath = strings.Trim(ownerPath, pathSeparatorConstant)
	repositoryName = strings.TrimSuffix(repositoryName, gitSuffixConstant)
	if len(ownerPath) == 0 || len(repositoryName) == 0 {
		return "", "", RemoteURLParseError{Input: input, Message: invalidRemoteURLMessageConstant}
	}
	return ownerPath, repositoryName, nil
}

// FormatRemoteURL creates a textual remote URL from a structured representation.
func FormatRemoteURL(remote RemoteURL) (string, error) {
	if remote.Protocol == RemoteProtocolFile {
		if len(strings.TrimSpace(remote.Path)) == 0 {
			return "", RemoteURLParseError{Input: remote.Path, Message: requiredValueMessageConstant}
		}
		return fmt.Sprintf(fileRemoteTemplateConstant, remote.Path), nil
	}

	for _, requiredValue := range []string{remote.Host, remote.Owner, remote.Repository} {
		if len(strings.TrimSpace(requiredValue)) == 0 {
			return "", RemoteURLParseError{Input: requiredValue, Message: requiredValueMessageConstant}
		}
	}

	switch remote.Protocol {
	case RemoteProtocolSSH:
		user := remote.User
		if len(user) == 0 {
			user = defaultSSHUserConstant
		}
		return fmt.Sprintf(scpRemoteTemplateConstant, user, remote.Host, remote.Owner, remote.Repository), nil
	case RemoteProtocolHTTPS:
		return fmt.Sprintf(httpsRemoteTemplateConstant, remote.Host, remote.Owner, remote.Repository), nil
	default:
		return "", UnsupportedProtocolError{Protocol: remote.Protocol}
	}
}

// EquivalentRemoteURLs reports whether two remotes address the same repository regardless of protocol,
// a trailing ".git" suffix, or host and owner letter case. Local remotes compare by cleaned path.
func EquivalentRemoteURLs(first string, second string) bool {
	firstRemote, firstParseError := ParseRemoteURL(first)
	secondRemote, secondParseError := ParseRemoteURL(second)
	if firstParseError != nil || secondParseError != nil {
		return normalizeUnparsedRemote(first) == normalizeUnparsedRemote(second)
	}
	if firstRemote.Protocol == RemoteProtocolFile || secondRemote.Protocol == RemoteProtocolFile {
		return firstRemote.Protocol == secondRemote.Protocol &&
			strings.TrimSuffix(firstRemote.Path, gitSuffixConstant) == strings.TrimSuffix(secondRemote.Path, gitSuffixConstant)
	}
	return strings.EqualFold(firstRemote.Host, secondRemote.Host) &&
		strings.EqualFold(firstRemote.Owner, secondRemote.Owner) &&
		strings.EqualFold(firstRemote.Repository, secondRemote.Repository)
}

func normalizeUnparsedRemote(remote string) string {
	trimmed := strings.TrimSuffix(strings.TrimSpace(remote), pathSeparatorConstant)
	return strings.TrimSuffix(trimmed, gitSuffixConstant)
}

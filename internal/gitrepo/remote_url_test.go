package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pubrelease/internal/gitrepo"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    gitrepo.RemoteURL
		expectError bool
	}{
		{
			name:     "scp_like",
			input:    "git@github.com:card-io/card.io-Android-SDK.git",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, User: "git", Host: "github.com", Owner: "card-io", Repository: "card.io-Android-SDK"},
		},
		{
			name:     "ssh_scheme_with_port",
			input:    "ssh://git@github.com:22/card-io/card.io-Android-SDK",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, User: "git", Host: "github.com", Owner: "card-io", Repository: "card.io-Android-SDK"},
		},
		{
			name:     "https_nested_owner",
			input:    "https://gitlab.example.com/mobile/sdk/card.io-Android-SDK.git",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "gitlab.example.com", Owner: "mobile/sdk", Repository: "card.io-Android-SDK"},
		},
		{
			name:     "file_scheme",
			input:    "file:///srv/git/public.git",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolFile, Path: "/srv/git/public.git"},
		},
		{
			name:     "absolute_path",
			input:    "/srv/git/./public.git",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolFile, Path: "/srv/git/public.git"},
		},
		{name: "empty", input: "  ", expectError: true},
		{name: "missing_owner", input: "git@github.com:repo.git", expectError: true},
		{name: "unknown_scheme", input: "svn://example.com/owner/repo", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsed, parseError := gitrepo.ParseRemoteURL(testCase.input)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expected, parsed)
		})
	}
}

func TestFormatRemoteURL(testInstance *testing.T) {
	formatted, formatError := gitrepo.FormatRemoteURL(gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "github.com", Owner: "card-io", Repository: "card.io-Android-SDK"})
	require.NoError(testInstance, formatError)
	require.Equal(testInstance, "https://github.com/card-io/card.io-Android-SDK.git", formatted)

	formatted, formatError = gitrepo.FormatRemoteURL(gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "card-io", Repository: "card.io-Android-SDK"})
	require.NoError(testInstance, formatError)
	require.Equal(testInstance, "git@github.com:card-io/card.io-Android-SDK.git", formatted)

	_, formatError = gitrepo.FormatRemoteURL(gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocol("svn"), Host: "h", Owner: "o", Repository: "r"})
	require.ErrorAs(testInstance, formatError, &gitrepo.UnsupportedProtocolError{})
}

func TestEquivalentRemoteURLs(testInstance *testing.T) {
	testCases := []struct {
		name       string
		first      string
		second     string
		equivalent bool
	}{
		{name: "ssh_and_https", first: "git@github.com:card-io/card.io-Android-SDK.git", second: "https://github.com/card-io/card.io-Android-SDK", equivalent: true},
		{name: "case_insensitive_owner", first: "git@GitHub.com:Card-IO/card.io-Android-SDK.git", second: "ssh://git@github.com/card-io/card.io-Android-SDK.git", equivalent: true},
		{name: "different_repository", first: "git@github.com:card-io/card.io-Android-SDK.git", second: "git@github.com:card-io/card.io-iOS-SDK.git", equivalent: false},
		{name: "file_paths", first: "/srv/git/public.git", second: "file:///srv/git/public", equivalent: true},
		{name: "file_and_network", first: "/srv/git/public.git", second: "git@github.com:srv/public.git", equivalent: false},
		{name: "unparsed_fallback", first: "../public.git", second: "../public", equivalent: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.equivalent, gitrepo.EquivalentRemoteURLs(testCase.first, testCase.second))
		})
	}
}

// Package version carries build metadata for lottokeeper and provides
// version comparison plus GitHub release lookups for update checks.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"runtime"
	"strings"
	"time"
)

// Build metadata, overridden at release time via -ldflags:
//
//	-X github.com/lottokeeper/lottokeeper/internal/version.Version=v1.2.0
//
//nolint:gochecknoglobals // Set at build time via ldflags
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Default configuration constants
const (
	// DefaultOwner and DefaultRepo identify the GitHub repository checked
	// for new releases.
	DefaultOwner = "lottokeeper"
	DefaultRepo  = "lottokeeper"

	DefaultBaseURL      = "https://api.github.com"
	DefaultTimeout      = 30 * time.Second
	maxErrorBodySize    = 1024      // 1KB limit for error response bodies
	maxResponseBodySize = 64 * 1024 // 64KB limit for success response bodies
)

// Errors returned by this package
var (
	ErrGitHubAPIFailed  = errors.New("GitHub API request failed")
	ErrInvalidOwner     = errors.New("owner cannot be empty")
	ErrInvalidRepo      = errors.New("repo cannot be empty")
	ErrInvalidOwnerRepo = errors.New("owner/repo contains invalid characters")
)

// validOwnerRepoPattern matches valid GitHub owner/repo names
// GitHub allows alphanumeric, hyphens, underscores, and dots
var validOwnerRepoPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// String renders the build metadata as a single human-readable line,
// for example "v1.2.0 (commit 4f9a1c2, built 2025-06-01)".
func String() string {
	s := Version

	var extras []string
	if Commit != "" {
		extras = append(extras, "commit "+Commit)
	}
	if Date != "" {
		extras = append(extras, "built "+Date)
	}
	if len(extras) > 0 {
		s += " (" + strings.Join(extras, ", ") + ")"
	}

	return s
}

// IsDevBuild reports whether v names an unreleased build: empty, "dev",
// or a bare commit hash.
func IsDevBuild(v string) bool {
	v = strings.TrimPrefix(v, "v")
	return v == "" || v == "dev" || isCommitHash(v)
}

// GitHubRelease represents a GitHub release
type GitHubRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
	Body        string    `json:"body"`
}

// Info contains the result of an update check
type Info struct {
	Current string
	Latest  string
	IsNewer bool
}

// Client provides methods for fetching GitHub releases with configurable settings.
// Use NewClient to create a properly initialized client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL sets a custom base URL for the GitHub API
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a new Client with the given options
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: fmt.Sprintf("lottokeeper/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// defaultClient is the package-level default client
var defaultClient = NewClient() //nolint:gochecknoglobals // Intentional package-level convenience client

// GetLatestRelease fetches the latest release from GitHub using the default client.
// This is a convenience wrapper around Client.GetLatestRelease.
func GetLatestRelease(ctx context.Context, owner, repo string) (*GitHubRelease, error) {
	return defaultClient.GetLatestRelease(ctx, owner, repo)
}

// CheckForUpdate compares the running build against the latest published
// lottokeeper release using the default client.
func CheckForUpdate(ctx context.Context) (*Info, error) {
	return defaultClient.CheckForUpdate(ctx, Version)
}

// validateOwnerRepo validates the owner and repo parameters
func validateOwnerRepo(owner, repo string) error {
	if owner == "" {
		return ErrInvalidOwner
	}
	if repo == "" {
		return ErrInvalidRepo
	}
	if !validOwnerRepoPattern.MatchString(owner) || !validOwnerRepoPattern.MatchString(repo) {
		return ErrInvalidOwnerRepo
	}
	return nil
}

// GetLatestRelease fetches the latest release from GitHub
func (c *Client) GetLatestRelease(ctx context.Context, owner, repo string) (*GitHubRelease, error) {
	if err := validateOwnerRepo(owner, repo); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, owner, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req) //nolint:gosec // URL is constructed from the trusted GitHub releases API endpoint
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Limit error body read to prevent memory exhaustion
		limitedReader := io.LimitReader(resp.Body, maxErrorBodySize)
		body, _ := io.ReadAll(limitedReader)
		return nil, fmt.Errorf("%w: status %d: %s", ErrGitHubAPIFailed, resp.StatusCode, string(body))
	}

	// Limit response body to prevent memory exhaustion from malicious servers
	limitedReader := io.LimitReader(resp.Body, maxResponseBodySize)
	var release GitHubRelease
	if err := json.NewDecoder(limitedReader).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &release, nil
}

// CheckForUpdate fetches the latest lottokeeper release and compares its tag
// against current. The latest-release endpoint never serves drafts or
// prereleases, so no filtering is needed here.
func (c *Client) CheckForUpdate(ctx context.Context, current string) (*Info, error) {
	release, err := c.GetLatestRelease(ctx, DefaultOwner, DefaultRepo)
	if err != nil {
		return nil, err
	}

	return &Info{
		Current: current,
		Latest:  release.TagName,
		IsNewer: IsNewerVersion(current, release.TagName),
	}, nil
}

// CompareVersions compares two version strings
// Returns:
//   - 1 if v1 > v2
//   - 0 if v1 == v2
//   - -1 if v1 < v2
//
//nolint:gocyclo,gocognit // Version comparison requires handling dev, commit hash, and semver cases
func CompareVersions(v1, v2 string) int {
	// Clean versions (remove 'v' prefix if present)
	v1 = strings.TrimPrefix(v1, "v")
	v2 = strings.TrimPrefix(v2, "v")

	// Handle development versions and commit hashes
	isV1Dev := v1 == "dev" || v1 == "" || isCommitHash(v1)
	isV2Dev := v2 == "dev" || v2 == "" || isCommitHash(v2)

	if isV1Dev && isV2Dev {
		return 0
	}
	if isV1Dev {
		return -1 // dev/commit is always considered older than a release
	}
	if isV2Dev {
		return 1
	}

	// Split versions into parts
	parts1 := parseVersion(v1)
	parts2 := parseVersion(v2)

	// Compare major, minor, patch
	for i := 0; i < 3; i++ {
		if i >= len(parts1) && i >= len(parts2) {
			break
		}
		val1 := 0
		val2 := 0
		if i < len(parts1) {
			val1 = parts1[i]
		}
		if i < len(parts2) {
			val2 = parts2[i]
		}

		if val1 > val2 {
			return 1
		}
		if val1 < val2 {
			return -1
		}
	}

	return 0
}

// parseVersion parses a version string into major, minor, patch integers
func parseVersion(version string) []int {
	// Remove any suffixes like -dirty, -rc1, +build, etc.
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))

	for _, part := range parts {
		var num int
		if _, err := fmt.Sscanf(part, "%d", &num); err == nil {
			result = append(result, num)
		}
	}

	return result
}

// IsNewerVersion checks if latestVersion is newer than currentVersion
func IsNewerVersion(currentVersion, latestVersion string) bool {
	return CompareVersions(latestVersion, currentVersion) > 0
}

// NormalizeVersion ensures version strings are in a consistent format.
// It removes the 'v' prefix, trims whitespace, and removes any pre-release
// or build metadata suffixes (e.g., -rc1, -dirty, +build).
func NormalizeVersion(version string) string {
	// Remove any pre-release or build metadata suffixes
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	// Remove leading/trailing whitespace and 'v' prefixes until stable
	for {
		trimmed := strings.TrimSpace(version)
		trimmed = strings.TrimLeft(trimmed, "v")
		if trimmed == version {
			break
		}
		version = trimmed
	}

	return version
}

// isCommitHash checks if a string looks like a git commit hash.
// It requires the string to:
// - Be 7-40 characters long (short to full SHA-1)
// - Contain only hex characters (0-9, a-f, A-F)
// - Contain at least one letter (to distinguish from pure numeric versions)
func isCommitHash(s string) bool {
	// Remove any -dirty suffix
	s = strings.TrimSuffix(s, "-dirty")

	// Commit hashes are typically 7-40 hex characters
	if len(s) < 7 || len(s) > 40 {
		return false
	}

	hasLetter := false
	for _, c := range s {
		isDigit := c >= '0' && c <= '9'
		isLowerHex := c >= 'a' && c <= 'f'
		isUpperHex := c >= 'A' && c <= 'F'

		if !isDigit && !isLowerHex && !isUpperHex {
			return false
		}
		if isLowerHex || isUpperHex {
			hasLetter = true
		}
	}

	// Require at least one letter to distinguish from pure numeric versions
	// like "1234567" or "2024010100"
	return hasLetter
}

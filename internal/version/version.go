// Package version tracks the lurchkit release identity. The release
// string, commit hash, and build date can be overridden at link time
// so packaged binaries report exactly what was shipped.
package version

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Overridable via -ldflags "-X github.com/lurchmath/lurchmath-sub002/internal/version.Version=..."
var (
	Version   = "0.8.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// versionCodenames maps version strings to their codenames
// Progression through the history of formal proof
var versionCodenames = map[string]string{
	"0.1.0": "Euclid",   // Axiomatic method
	"0.2.0": "Boole",    // Algebra of logic
	"0.3.0": "Frege",    // Quantifiers and formal inference
	"0.4.0": "Peano",    // Axioms for arithmetic
	"0.5.0": "Hilbert",  // Formalism and proof theory
	"0.6.0": "Russell",  // Type theory
	"0.7.0": "Goedel",   // Incompleteness
	"0.8.0": "Gentzen",  // Natural deduction, where Let and ForSome live
	"0.9.0": "Tarski",   // Model theory
	"1.0.0": "Turing",   // Computability milestone
	"2.0.0": "Automath", // Machine-checked proof beyond pen and paper
}

// Info collects everything a bug report needs about the running binary.
type Info struct {
	Version   string          `json:"version"`
	Codename  string          `json:"codename"`
	GitCommit string          `json:"gitCommit"`
	BuildDate string          `json:"buildDate"`
	GoVersion string          `json:"goVersion"`
	Platform  string          `json:"platform"`
	SemVer    *semver.Version `json:"-"`
}

// currentSemver parses Version, returning nil when it is not valid semver.
func currentSemver() *semver.Version {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil
	}
	return sv
}

// GetVersion returns the raw version string.
func GetVersion() string {
	return Version
}

// GetCodename returns the codename of the running release, if it has one.
func GetCodename() string {
	return GetCodenameForVersion(Version)
}

// GetBaseVersion strips prerelease and build metadata down to major.minor.patch.
func GetBaseVersion() string {
	sv := currentSemver()
	if sv == nil {
		return Version
	}
	return fmt.Sprintf("%d.%d.%d", sv.Major(), sv.Minor(), sv.Patch())
}

// GetBuildMetadata returns the part of the version after the plus sign.
func GetBuildMetadata() string {
	sv := currentSemver()
	if sv == nil {
		return ""
	}
	return sv.Metadata()
}

// GetCommitCount extracts the commit count from build metadata shaped
// like 123.abc1234, as produced by the release script.
func GetCommitCount() int {
	meta := GetBuildMetadata()
	if meta == "" {
		return 0
	}
	count, err := strconv.Atoi(strings.SplitN(meta, ".", 2)[0])
	if err != nil || count <= 0 {
		return 0
	}
	return count
}

// GetCodenameForVersion looks up the codename for a version string.
// Patch and prerelease versions take the name of their minor line.
func GetCodenameForVersion(version string) string {
	if name, ok := versionCodenames[version]; ok {
		return name
	}
	sv, err := semver.NewVersion(version)
	if err != nil {
		return ""
	}
	return versionCodenames[fmt.Sprintf("%d.%d.0", sv.Major(), sv.Minor())]
}

// GetInfo assembles the full build description, failing when the
// compiled-in version is not valid semver.
func GetInfo() (*Info, error) {
	if err := ValidateVersion(); err != nil {
		return nil, err
	}

	return &Info{
		Version:   Version,
		Codename:  GetCodename(),
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		SemVer:    currentSemver(),
	}, nil
}

// shortCommit trims a commit hash for display, returning "" when the
// hash was never injected.
func shortCommit(hash string) string {
	if hash == "unknown" || hash == "" {
		return ""
	}
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// GetFormattedVersion renders a one-line version banner.
func GetFormattedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("lurchkit v%s (invalid version)", Version)
	}

	banner := "lurchkit v" + info.Version
	if info.Codename != "" {
		banner = fmt.Sprintf("%s '%s'", banner, info.Codename)
	}

	parts := []string{banner}
	if hash := shortCommit(info.GitCommit); hash != "" {
		parts = append(parts, "commit "+hash)
	}
	if info.BuildDate != "" && info.BuildDate != "unknown" {
		parts = append(parts, "built "+info.BuildDate)
	}
	return strings.Join(parts, ", ")
}

// GetDetailedVersion renders the multi-line form shown by --detailed.
func GetDetailedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("lurchkit v%s (error: %v)", Version, err)
	}

	var b strings.Builder
	if info.Codename != "" {
		fmt.Fprintf(&b, "lurchkit v%s '%s'\n", info.Version, info.Codename)
		fmt.Fprintf(&b, "Codename: %s\n", info.Codename)
	} else {
		fmt.Fprintf(&b, "lurchkit v%s\n", info.Version)
	}
	fmt.Fprintf(&b, "Git Commit: %s\n", info.GitCommit)
	fmt.Fprintf(&b, "Build Date: %s\n", info.BuildDate)
	if count := GetCommitCount(); count > 0 {
		fmt.Fprintf(&b, "Commit Count: %d\n", count)
	}
	if meta := GetBuildMetadata(); meta != "" {
		fmt.Fprintf(&b, "Build Metadata: %s\n", meta)
	}
	fmt.Fprintf(&b, "Go Version: %s\n", info.GoVersion)
	fmt.Fprintf(&b, "Platform: %s", info.Platform)
	return b.String()
}

// ValidateVersion reports whether the compiled-in version parses as semver.
func ValidateVersion() error {
	if _, err := semver.NewVersion(Version); err != nil {
		return fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return nil
}

// IsPrerelease reports whether the running release carries a prerelease tag.
func IsPrerelease() bool {
	sv := currentSemver()
	return sv != nil && sv.Prerelease() != ""
}

// IsDevelopment reports whether this looks like a local build with no
// injected build information.
func IsDevelopment() bool {
	return GitCommit == "unknown" || BuildDate == "unknown"
}

// CompareVersions orders two version strings, returning -1, 0, or 1.
func CompareVersions(v1, v2 string) (int, error) {
	a, err := semver.NewVersion(v1)
	if err != nil {
		return 0, fmt.Errorf("invalid version v1 '%s': %w", v1, err)
	}
	b, err := semver.NewVersion(v2)
	if err != nil {
		return 0, fmt.Errorf("invalid version v2 '%s': %w", v2, err)
	}
	return a.Compare(b), nil
}

// SetBuildInfo replaces the build identity, primarily for tests.
func SetBuildInfo(version, gitCommit, buildDate string) {
	Version = version
	GitCommit = gitCommit
	BuildDate = buildDate
}

// GetBuildTime parses BuildDate, trying the layouts the release
// tooling has used over time.
func GetBuildTime() (time.Time, error) {
	if BuildDate == "" || BuildDate == "unknown" {
		return time.Time{}, errors.New("build date not available")
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, BuildDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse build date '%s'", BuildDate)
}

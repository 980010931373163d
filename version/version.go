package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Set with -ldflags -X.
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
	GoVersion = ""
)

const shortCommit = 7

// Info is the resolved build metadata.
type Info struct {
	Module    string    `json:"module,omitempty"`
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit,omitempty"`
	GitBranch string    `json:"git_branch,omitempty"`
	GoVersion string    `json:"go_version,omitempty"`
	BuildDate time.Time `json:"build_date"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// GetVersionInfo resolves the link-time variables, filling gaps from the
// binary's embedded build info.
func GetVersionInfo() *Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
}

func resolve(bi *debug.BuildInfo) *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		GoVersion: GoVersion,
	}
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuildDate = t.UTC()
	}

	if bi != nil {
		info.Module = bi.Main.Path
		if info.GoVersion == "" {
			info.GoVersion = bi.GoVersion
		}
		// "go install module@v1.2.0" records the tag as the main version.
		if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = strings.TrimPrefix(bi.Main.Version, "v")
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.modified":
				info.IsDirty = s.Value == "true"
			case "vcs.time":
				if info.BuildDate.IsZero() {
					if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
						info.BuildDate = t.UTC()
					}
				}
			}
		}
	}

	if len(info.GitCommit) > shortCommit {
		info.GitCommit = info.GitCommit[:shortCommit]
	}
	info.IsRelease = info.Version != "dev" && !info.IsDirty && !strings.Contains(info.Version, "dirty")
	return info
}

// Short renders version, commit and a dirty marker, e.g. "1.2.0-abc1234".
func (i *Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	if i.IsDirty {
		return fmt.Sprintf("%s-%s-dirty", i.Version, i.GitCommit)
	}
	return fmt.Sprintf("%s-%s", i.Version, i.GitCommit)
}

// String renders the short form plus a feature branch and build date.
func (i *Info) String() string {
	s := i.Short()
	if i.GitBranch != "" && i.GitBranch != "main" && i.GitBranch != "master" {
		s += " [" + i.GitBranch + "]"
	}
	if !i.BuildDate.IsZero() {
		s += " (built " + i.BuildDate.Format(time.RFC3339) + ")"
	}
	if i.GoVersion != "" {
		s += " " + i.GoVersion
	}
	return s
}

// GetShortVersion returns GetVersionInfo().Short().
func GetShortVersion() string { return GetVersionInfo().Short() }

// GetFullVersion returns GetVersionInfo().String().
func GetFullVersion() string { return GetVersionInfo().String() }

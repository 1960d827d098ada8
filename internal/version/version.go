package version

import (
	"runtime"
	"runtime/debug"
)

// Set at build time:
//
//	go build -ldflags "-X ecofin-advisor/internal/version.BuildVersion=1.2.0"
var (
	BuildVersion = "dev"
	GitSHA       = ""
	BuildTime    = ""
)

const Service = "ecofin-advisor"

type Info struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GitSHA    string `json:"git_sha,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"vcs_modified,omitempty"`
	GoVersion string `json:"go_version"`
}

// Get falls back to the VCS stamp from debug.ReadBuildInfo when ldflags were not set.
func Get() Info {
	info := Info{
		Service:   Service,
		Version:   BuildVersion,
		GitSHA:    GitSHA,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitSHA == "" {
				info.GitSHA = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

const buildInfoUnknown = "N/A"

// AppBuildInfo is the build metadata linked into the server and client
// binaries. Empty values read back as "N/A".
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: strings.TrimSpace(version),
		date:    strings.TrimSpace(date),
		commit:  strings.TrimSpace(commit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return orUnknown(a.version) }
func (a AppBuildInfo) BuildDate() string    { return orUnknown(a.date) }
func (a AppBuildInfo) BuildCommit() string  { return orUnknown(a.commit) }

// Known reports whether a version was linked in.
func (a AppBuildInfo) Known() bool {
	return a.version != ""
}

// String renders "version (commit, date)".
func (a AppBuildInfo) String() string {
	return a.BuildVersion() + " (" + a.BuildCommit() + ", " + a.BuildDate() + ")"
}

func orUnknown(v string) string {
	if v == "" {
		return buildInfoUnknown
	}
	return v
}

package config

import (
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// fallbackProjectName is used when nothing usable can be detected.
const fallbackProjectName = "my-project"

var invalidNameChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// DetectProjectName guesses a project name for dir.
// Priority: 1. Git remote origin, 2. Directory name
func DetectProjectName(dir string) string {
	if name := detectFromGitRemote(dir); name != "" {
		return name
	}
	return detectFromDirectory(dir)
}

// detectFromGitRemote extracts repo name from git remote origin
func detectFromGitRemote(dir string) string {
	cmd := exec.Command("git", "remote", "get-url", "origin")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}

	return extractRepoName(strings.TrimSpace(string(output)))
}

// extractRepoName parses git URLs to extract repository name
// Supports: https://github.com/user/repo.git, git@github.com:user/repo.git
func extractRepoName(url string) string {
	url = strings.TrimSuffix(url, ".git")

	// SSH format: git@github.com:user/repo
	if strings.HasPrefix(url, "git@") {
		if _, path, ok := strings.Cut(url, ":"); ok {
			url = path
		}
	}

	parts := strings.Split(url, "/")
	return sanitizeName(parts[len(parts)-1])
}

func detectFromDirectory(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fallbackProjectName
	}
	return sanitizeName(filepath.Base(abs))
}

// sanitizeName lowercases name and keeps only the characters Easypanel
// accepts in project names (alphanumeric, hyphens, underscores).
func sanitizeName(name string) string {
	name = strings.ToLower(name)
	name = invalidNameChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	if name == "" {
		return fallbackProjectName
	}
	return name
}

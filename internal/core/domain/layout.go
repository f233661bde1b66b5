package domain

import (
	"os"
	"path/filepath"
)

const (
	// HomeEnv overrides the keel home directory.
	HomeEnv = "KEEL_HOME"

	// HomeDirName is the name of the keel home directory inside the user's home.
	HomeDirName = ".keel"

	// RepositoryDirName is the name of the recipe repository directory.
	RepositoryDirName = "repository"

	// RepositoryIndexName is the name of the repository index file.
	RepositoryIndexName = "index.yaml"

	// CacheDirName is the name of the local package cache directory.
	CacheDirName = "cache"

	// ProfilesDirName is the name of the profiles directory.
	ProfilesDirName = "profiles"

	// ConfigFileName is the name of the tool configuration file.
	ConfigFileName = "keel.yaml"

	// SettingsFileName is the name of an optional settings schema override.
	SettingsFileName = "settings.yml"

	// ConsumerFileName is the name of the consumer manifest.
	ConsumerFileName = "keelfile.yaml"

	// LockfileName is the default lockfile name.
	LockfileName = "keel.lock"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// HomeDir returns $KEEL_HOME, or ~/.keel, or .keel when no user home exists.
func HomeDir() string {
	if home := os.Getenv(HomeEnv); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return HomeDirName
	}
	return filepath.Join(userHome, HomeDirName)
}

// DefaultRepositoryPath returns the repository directory under home.
func DefaultRepositoryPath(home string) string {
	return filepath.Join(home, RepositoryDirName)
}

// DefaultCachePath returns the local package cache directory under home.
func DefaultCachePath(home string) string {
	return filepath.Join(home, CacheDirName)
}

// ProfilePath resolves a profile name: paths are returned unchanged, bare
// names are looked up in the profiles directory under home.
func ProfilePath(home, name string) string {
	if filepath.IsAbs(name) || filepath.Base(name) != name {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(home, ProfilesDirName, name)
}

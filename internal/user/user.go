// Package user stores the local cookme identity. The identity names the
// default fridge owner and recipe author of CLI commands.
package user

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/VoxDroid/cookme/internal/config"
)

// ErrNoIdentity is returned by Owner when neither a flag value nor a stored
// profile names the user.
var ErrNoIdentity = errors.New("no identity: pass --owner or run 'cookme whoami set <name>'")

// Profile holds persisted identity metadata.
type Profile struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func profilePath() (string, error) {
	d, err := config.EnsureDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "whoami.json"), nil
}

// SetProfile saves the profile to disk.
func SetProfile(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("name cannot be empty")
	}
	pfile, err := profilePath()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(pfile, append(b, '\n'), 0o600)
}

// GetProfile reads the profile. Returns (Profile, true, nil) if found.
func GetProfile() (Profile, bool, error) {
	pfile, err := profilePath()
	if err != nil {
		return Profile{}, false, err
	}
	b, err := os.ReadFile(pfile)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, false, nil
		}
		return Profile{}, false, err
	}
	var p Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

// ClearProfile removes the persisted profile.
func ClearProfile() error {
	pfile, err := profilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(pfile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Owner resolves the acting user: an explicit value wins, then the stored
// profile name.
func Owner(explicit string) (string, error) {
	if s := strings.TrimSpace(explicit); s != "" {
		return s, nil
	}
	p, ok, err := GetProfile()
	if err != nil {
		return "", err
	}
	if !ok || p.Name == "" {
		return "", ErrNoIdentity
	}
	return p.Name, nil
}

package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Identity is the locally persisted user identity. The server creates user
// records lazily, so the client just needs a stable id across runs.
type Identity struct {
	UserId    string    `yaml:"user_id"`
	CreatedAt time.Time `yaml:"created_at"`
}

func DefaultIdentityPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "nestle-in", "identity.yml")
}

// LoadIdentity reads the identity file, generating and persisting a fresh
// identity when none exists yet.
func LoadIdentity(path string) (Identity, error) {
	if path == "" {
		return Identity{}, errors.New("no identity path provided")
	}

	data, err := os.ReadFile(path)
	if err == nil {
		var id Identity
		if err := yaml.Unmarshal(data, &id); err != nil {
			return Identity{}, err
		}
		if id.UserId != "" {
			return id, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Identity{}, err
	}

	id := Identity{
		UserId:    fmt.Sprintf("user_%s", uuid.NewString()),
		CreatedAt: time.Now(),
	}
	if err := SaveIdentity(id, path); err != nil {
		return Identity{}, err
	}
	return id, nil
}

func SaveIdentity(id Identity, path string) error {
	if path == "" {
		return errors.New("no identity path provided")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(id)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ClearIdentity removes the identity file. The next LoadIdentity starts over
// with a fresh userId. Clearing an identity that does not exist is fine.
func ClearIdentity(path string) error {
	if path == "" {
		return errors.New("no identity path provided")
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

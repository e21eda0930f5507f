package config

import (
	"net"
	"os"
	"sort"
	"strings"

	"github.com/convox/ftprelay/pkg/helpers"
	"github.com/convox/ftprelay/pkg/structs"
)

const (
	DefaultPort = "21"

	StagingMemory = "memory"
	StagingDisk   = "disk"
)

// Config holds the connection parameters read once at process start
type Config struct {
	Secret    string
	Host      string
	Username  string
	Directory string
	Staging   string
	TempDir   string
}

var required = map[string]func(c *Config) *string{
	"password":        func(c *Config) *string { return &c.Secret },
	"ip":              func(c *Config) *string { return &c.Host },
	"user":            func(c *Config) *string { return &c.Username },
	"remoteDirectory": func(c *Config) *string { return &c.Directory },
}

func FromEnv() (*Config, error) {
	return Load(os.Getenv)
}

// Load reads the configuration through getenv. Every absent required
// variable is reported in a single ConfigMissing error.
func Load(getenv func(string) string) (*Config, error) {
	c := &Config{
		Staging: helpers.CoalesceString(getenv("staging"), StagingMemory),
		TempDir: helpers.CoalesceString(getenv("tmpDir"), os.TempDir()),
	}

	missing := []string{}

	for name, field := range required {
		v := getenv(name)
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
			continue
		}
		*field(c) = v
	}

	c.Secret = strings.TrimSpace(c.Secret)

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, structs.ErrConfigMissing.Errorf("required environment not set: %s", strings.Join(missing, ", "))
	}

	switch c.Staging {
	case StagingMemory, StagingDisk:
	default:
		return nil, structs.ErrConfigInvalid.Errorf("staging must be %s or %s: %s", StagingMemory, StagingDisk, c.Staging)
	}

	return c, nil
}

// Address returns the control connection address, defaulting the port
func (c *Config) Address() string {
	if _, _, err := net.SplitHostPort(c.Host); err == nil {
		return c.Host
	}

	return net.JoinHostPort(strings.Trim(c.Host, "[]"), DefaultPort)
}

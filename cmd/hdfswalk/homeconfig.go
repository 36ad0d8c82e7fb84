// homeconfig.go - $HOME/.hdfsrc: persisted default gateway/config path
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	fio "github.com/opencoff/hdfswalk"
	"github.com/opencoff/shlex"
)

// HomeConfig is the small persisted key-value file at $HOME/.hdfsrc:
// the user's last-chosen default gateway and/or HDFS config directory.
// It is read once at startup and, on change, rewritten in full - no
// hot reload, no concurrent-edit support, matching the rest of this
// tool's on-disk state.
type HomeConfig struct {
	ConfigPath string
	Gateway    string
}

func homeConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("homeconfig: %w", err)
	}
	return filepath.Join(home, ".hdfsrc"), nil
}

// LoadHomeConfig reads $HOME/.hdfsrc. A missing file is not an error -
// it just means no defaults have been persisted yet.
func LoadHomeConfig() (*HomeConfig, error) {
	p, err := homeConfigPath()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return &HomeConfig{}, nil
		}
		return nil, fmt.Errorf("homeconfig: %s: %w", p, err)
	}

	hc := &HomeConfig{}
	for i, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, rest, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("homeconfig: %s:%d: malformed line %q", p, i+1, line)
		}

		// values are shlex-tokenized so a config path with embedded
		// spaces can be quoted, the same convention this module uses
		// for its test-suite DSL (see testsuite/split.go upstream).
		toks, err := shlex.Split(strings.TrimSpace(rest))
		if err != nil {
			return nil, fmt.Errorf("homeconfig: %s:%d: %w", p, i+1, err)
		}
		var val string
		if len(toks) > 0 {
			val = toks[0]
		}

		switch strings.TrimSpace(key) {
		case "config":
			hc.ConfigPath = val
		case "gateway":
			hc.Gateway = val
		}
	}
	return hc, nil
}

// Save rewrites $HOME/.hdfsrc in full via a fio.SafeFile, so a crash
// mid-write never corrupts the old config.
func (hc *HomeConfig) Save() error {
	p, err := homeConfigPath()
	if err != nil {
		return err
	}

	var b strings.Builder
	if hc.ConfigPath != "" {
		fmt.Fprintf(&b, "config=%s\n", shlexQuote(hc.ConfigPath))
	}
	if hc.Gateway != "" {
		fmt.Fprintf(&b, "gateway=%s\n", shlexQuote(hc.Gateway))
	}

	sf, err := fio.NewSafeFile(p, fio.OPT_OVERWRITE, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("homeconfig: %s: %w", p, err)
	}
	defer sf.Abort()

	if _, err := sf.Write([]byte(b.String())); err != nil {
		return fmt.Errorf("homeconfig: %s: %w", p, err)
	}
	return sf.Close()
}

// shlexQuote wraps a value in double quotes if it contains whitespace,
// so Save/Load round-trip paths with embedded spaces.
func shlexQuote(s string) string {
	if strings.ContainsAny(s, " \t\"") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

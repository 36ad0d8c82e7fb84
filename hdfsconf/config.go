// config.go - read Hadoop-style XML property files (core-site.xml, hdfs-site.xml)
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

// Package hdfsconf reads the Hadoop "core-site.xml"/"hdfs-site.xml"
// property file format and derives the namenode host/port an hdfs
// connection needs. There is no third-party XML library anywhere in
// this codebase's dependency pack, so this one component is built on
// encoding/xml's streaming Decoder - the direct analog of the
// token-at-a-time event reader this is ported from.
package hdfsconf

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	fio "github.com/opencoff/hdfswalk"
)

// ConfigMap is an ordered-insensitive string->string map read from one
// or more Hadoop property files, plus the two synthetic keys "host"
// and "port" derived from it.
type ConfigMap map[string]string

// Config is a parsed set of Hadoop property files together with the
// directory they were read from.
type Config struct {
	Dir string
	Map ConfigMap
}

// DirectoryNotFoundError is returned by New when the config directory
// does not exist.
type DirectoryNotFoundError struct {
	Dir string
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("hdfsconf: directory %q not found", e.Dir)
}

// defaultConfigFiles are read, in order, from the config directory. A
// key defined in both files takes its value from whichever file is
// read last - hdfs-site.xml wins over core-site.xml, matching Hadoop's
// own layering where the more specific file is consulted last.
var defaultConfigFiles = []string{"core-site.xml", "hdfs-site.xml"}

// New reads core-site.xml and hdfs-site.xml (whichever are present)
// from dir and derives host/port.
func New(dir string) (*Config, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, &DirectoryNotFoundError{Dir: dir}
	}

	cm := make(ConfigMap)
	for _, name := range defaultConfigFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := readPropertyFile(p, cm); err != nil {
			return nil, err
		}
	}

	if host, port, ok := deriveHostPort(cm); ok {
		cm["host"] = host
		if port != "" {
			cm["port"] = port
		}
	}

	return &Config{Dir: dir, Map: cm}, nil
}

// readPropertyFile streams <property><name>..</name><value>..</value></property>
// entries from a single Hadoop XML file into cm, overwriting any
// existing key.
func readPropertyFile(path string, cm ConfigMap) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := xml.NewDecoder(f)

	var (
		inName  bool
		inValue bool
		ignore  bool
		key     string
		value   string
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("hdfsconf: %s: %w", path, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "name":
				inName, inValue, ignore = true, false, false
			case "value":
				inName, inValue, ignore = false, true, false
			case "final":
				// Hadoop's <final> marker has nothing to do with the
				// key/value text; ignore whatever text follows it so
				// it can't be mistaken for a value.
				ignore = true
			}
		case xml.CharData:
			if ignore {
				continue
			}
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			if inName {
				key = text
			} else if inValue {
				value = text
			}
		case xml.EndElement:
			if t.Name.Local == "property" {
				if key != "" && value != "" {
					cm[key] = value
				}
				key, value = "", ""
				inName, inValue, ignore = false, false, false
			}
		}
	}
	return nil
}

// deriveHostPort implements the documented three-way priority:
// fs.defaultFS (hdfs:// form) then dfs.namenode.rpc-address then the
// first dfs.nameservices token.
func deriveHostPort(cm ConfigMap) (host, port string, ok bool) {
	if v, present := cm["fs.defaultFS"]; present && strings.HasPrefix(v, "hdfs://") {
		rest := strings.TrimPrefix(v, "hdfs://")
		h, p, found := strings.Cut(rest, ":")
		if found {
			return h, p, true
		}
		return rest, "", true
	}

	if v, present := cm["dfs.namenode.rpc-address"]; present {
		h, p, found := strings.Cut(v, ":")
		if found {
			return h, p, true
		}
		return v, "", true
	}

	if v, present := cm["dfs.nameservices"]; present {
		h, _, _ := strings.Cut(v, ",")
		return h, "", true
	}

	return "", "", false
}

// Get returns a key's raw string value.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.Map[key]
	return v, ok
}

// GetInt parses a key's value as an integer.
func (c *Config) GetInt(key string) (int, bool) {
	v, ok := c.Map[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Gateways splits dfs.nameservices by ',' and returns every named
// gateway, or an empty slice if the key is unset.
func (c *Config) Gateways() []string {
	v, ok := c.Map["dfs.nameservices"]
	if !ok || v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Serialize renders the config map as a big-endian, length-prefixed
// binary stream via the root package's EncodeStringMap, so a round-trip
// through Serialize/Deserialize can be checked by comparing the decoded
// map without re-parsing XML. Pairs are written in map iteration order,
// so two calls on the same map may produce different bytes.
func (cm ConfigMap) Serialize() []byte {
	return fio.EncodeStringMap(map[string]string(cm))
}

// Deserialize parses the stream produced by Serialize.
func Deserialize(b []byte) (ConfigMap, error) {
	m, err := fio.DecodeStringMap(b)
	if err != nil {
		return nil, fmt.Errorf("hdfsconf: %w", err)
	}
	return ConfigMap(m), nil
}

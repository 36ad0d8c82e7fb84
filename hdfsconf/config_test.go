// config_test.go - property-file parsing tests
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

package hdfsconf

import (
	"os"
	"path/filepath"
	"testing"
)

const coreSite = `<?xml version="1.0"?>
<configuration>
  <property>
    <name>fs.defaultFS</name>
    <value>hdfs://nn1.example.com:8020</value>
    <final>true</final>
  </property>
</configuration>
`

const hdfsSite = `<?xml version="1.0"?>
<configuration>
  <property>
    <name>dfs.replication</name>
    <value>3</value>
  </property>
</configuration>
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestConfigDefaultFS(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "core-site.xml", coreSite)
	writeFile(t, dir, "hdfs-site.xml", hdfsSite)

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if v, _ := cfg.Get("host"); v != "nn1.example.com" {
		t.Fatalf("host = %q, want nn1.example.com", v)
	}
	if v, _ := cfg.Get("port"); v != "8020" {
		t.Fatalf("port = %q, want 8020", v)
	}
	if n, ok := cfg.GetInt("dfs.replication"); !ok || n != 3 {
		t.Fatalf("dfs.replication = %v, %v", n, ok)
	}
}

func TestConfigFinalTagIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "core-site.xml", coreSite)

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// the <final>true</final> text must never leak into fs.defaultFS's value
	if v, _ := cfg.Get("fs.defaultFS"); v != "hdfs://nn1.example.com:8020" {
		t.Fatalf("fs.defaultFS = %q", v)
	}
}

func TestConfigNamenodeRPCAddressFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hdfs-site.xml", `<configuration>
  <property><name>dfs.namenode.rpc-address</name><value>nn2:9000</value></property>
</configuration>`)

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v, _ := cfg.Get("host"); v != "nn2" {
		t.Fatalf("host = %q, want nn2", v)
	}
	if v, _ := cfg.Get("port"); v != "9000" {
		t.Fatalf("port = %q, want 9000", v)
	}
}

func TestConfigNameservicesFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hdfs-site.xml", `<configuration>
  <property><name>dfs.nameservices</name><value>ns1,ns2</value></property>
</configuration>`)

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v, _ := cfg.Get("host"); v != "ns1" {
		t.Fatalf("host = %q, want ns1", v)
	}
	if _, ok := cfg.Get("port"); ok {
		t.Fatalf("port should be unset when only nameservices is present")
	}
	gw := cfg.Gateways()
	if len(gw) != 2 || gw[0] != "ns1" || gw[1] != "ns2" {
		t.Fatalf("Gateways() = %v", gw)
	}
}

func TestConfigDirectoryNotFound(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatalf("expected DirectoryNotFoundError")
	}
	var dnf *DirectoryNotFoundError
	if e, ok := err.(*DirectoryNotFoundError); !ok {
		t.Fatalf("expected *DirectoryNotFoundError, got %T", err)
	} else {
		dnf = e
	}
	_ = dnf
}

func TestConfigMapSerializeRoundTrip(t *testing.T) {
	cm := ConfigMap{"a": "1", "b": "2"}
	b := cm.Serialize()
	got, err := Deserialize(b)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if len(got) != len(cm) || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("got %v, want %v", got, cm)
	}
}

// main.go - hdfswalk CLI: ls/cat a glob pattern over local disk or HDFS
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
	"io"
	"os"
	"path"

	"github.com/opencoff/go-logger"
	flag "github.com/opencoff/pflag"

	"github.com/opencoff/hdfswalk/hdfs"
	"github.com/opencoff/hdfswalk/localfs"
	"github.com/opencoff/hdfswalk/walk"
)

// reader is the capability cmdCat needs from a backend beyond walk.FS
// itself: the ability to open a matched entry for reading. Both
// localfs.FS and hdfs.FS implement it.
type reader interface {
	OpenRead(path string) (io.ReadCloser, error)
}

var Z = path.Base(os.Args[0])

var log logger.Logger

// globalOpt holds the flags common to every subcommand.
type globalOpt struct {
	configDir string
	gateway   string
	nameNode  string
	local     bool
	verbose   bool
}

func main() {
	var g globalOpt
	var help bool

	fs := flag.NewFlagSet(Z, flag.ExitOnError)
	fs.StringVarP(&g.configDir, "config", "C", "", "Use Hadoop config directory `DIR`")
	fs.StringVarP(&g.gateway, "gateway", "g", "", "Use nameservice `NAME` as the gateway")
	fs.StringVarP(&g.nameNode, "namenode", "H", "", "Override the namenode host with `HOST`")
	fs.BoolVarP(&g.local, "local", "l", false, "Force the local disk backend [False]")
	fs.BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose diagnostics [False]")
	fs.BoolVarP(&help, "help", "h", false, "Show help and exit [False]")
	fs.SetOutput(os.Stdout)

	if err := fs.Parse(os.Args[1:]); err != nil {
		Die("%s", err)
	}

	lvl := logger.LOG_WARNING
	if g.verbose {
		lvl = logger.LOG_DEBUG
	}
	l, err := logger.NewLogger("STDERR", lvl, Z, logger.Ldate|logger.Ltime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: logger: %s\n", Z, err)
		os.Exit(1)
	}
	log = l
	hdfs.SetLogger(l)

	args := fs.Args()
	if help || len(args) == 0 {
		usage(fs)
	}

	if err := resolveDefaults(&g); err != nil {
		Die("%s", err)
	}

	cmd, rest := args[0], args[1:]

	var cmderr error
	switch cmd {
	case "ls":
		cmderr = cmdLs(&g, rest)
	case "cat":
		cmderr = cmdCat(&g, rest)
	case "gateway":
		cmderr = cmdGateway(&g, rest)
	default:
		Die("unknown subcommand %q", cmd)
	}

	if cmderr != nil {
		Die("%s", cmderr)
	}
}

// resolveDefaults fills in configDir/gateway that weren't given on the
// command line, in the documented priority order: CLI flag (already
// set by the time this runs) -> $HOME/.hdfsrc -> environment
// (HADOOP_INSTALL, GATEWAY_DEFAULT).
func resolveDefaults(g *globalOpt) error {
	if g.configDir != "" && g.gateway != "" {
		return nil
	}

	hc, err := LoadHomeConfig()
	if err != nil {
		return err
	}

	if g.configDir == "" {
		g.configDir = hc.ConfigPath
	}
	if g.configDir == "" {
		g.configDir = os.Getenv("HADOOP_INSTALL")
	}

	if g.gateway == "" {
		g.gateway = hc.Gateway
	}
	if g.gateway == "" {
		g.gateway = os.Getenv("GATEWAY_DEFAULT")
	}
	return nil
}

// openBackend picks the local disk backend or connects to HDFS,
// depending on -l/--local and whether a config directory was resolved.
func openBackend(g *globalOpt) (walk.FS, func(), error) {
	if g.local || g.configDir == "" {
		return localfs.New(), func() {}, nil
	}

	// -H wins; otherwise the resolved gateway (nameservice) is the
	// namenode to connect to.
	host := g.nameNode
	if host == "" {
		host = g.gateway
	}

	var opts []hdfs.ConnectOption
	if host != "" {
		opts = append(opts, hdfs.WithNameNode(host))
	}

	fs, err := hdfs.Connect(g.configDir, opts...)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() { fs.Close() }, nil
}

func cmdLs(g *globalOpt, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("ls: usage: %s ls PATH", Z)
	}

	fs, closeFn, err := openBackend(g)
	if err != nil {
		return err
	}
	defer closeFn()

	w, err := walk.New(fs, args[0])
	if err != nil {
		return err
	}

	for {
		item, ok, err := w.Next()
		if err != nil {
			log.Warn("%s", err)
			continue
		}
		if !ok {
			break
		}
		if item.IsDir {
			fmt.Printf("%s/\n", item.Path)
		} else {
			fmt.Println(item.Path)
		}
	}
	return nil
}

func cmdCat(g *globalOpt, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("cat: usage: %s cat PATH", Z)
	}

	fs, closeFn, err := openBackend(g)
	if err != nil {
		return err
	}
	defer closeFn()

	src, ok := fs.(reader)
	if !ok {
		return fmt.Errorf("cat: backend cannot open files for reading")
	}

	r, err := src.OpenRead(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			os.Stdout.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	return nil
}

func cmdGateway(g *globalOpt, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("gateway: usage: %s gateway {list|switch NAME|current}", Z)
	}

	switch args[0] {
	case "list":
		if g.configDir == "" {
			return fmt.Errorf("gateway: no config directory resolved")
		}
		gws, err := hdfs.ListGateways(g.configDir)
		if err != nil {
			return err
		}
		for _, name := range gws {
			fmt.Println(name)
		}
		return nil

	case "current":
		if g.gateway == "" {
			fmt.Println("(none)")
		} else {
			fmt.Println(g.gateway)
		}
		return nil

	case "switch":
		if len(args) != 2 {
			return fmt.Errorf("gateway: usage: %s gateway switch NAME", Z)
		}
		hc, err := LoadHomeConfig()
		if err != nil {
			return err
		}
		hc.Gateway = args[1]
		if g.configDir != "" {
			hc.ConfigPath = g.configDir
		}
		return hc.Save()

	default:
		return fmt.Errorf("gateway: unknown subcommand %q", args[0])
	}
}

func usage(fs *flag.FlagSet) {
	fmt.Printf(usageStr, Z)
	fs.PrintDefaults()
	os.Exit(1)
}

// Die prints a formatted diagnostic and exits with a non-zero status,
// the same terse error-reporting shape this module's test-runner uses.
func Die(format string, args ...interface{}) {
	if log != nil {
		log.Error(format, args...)
	} else {
		fmt.Fprintf(os.Stderr, "%s: %s\n", Z, fmt.Sprintf(format, args...))
	}
	os.Exit(1)
}

var usageStr = `%s - walk a glob pattern over local disk or HDFS.

Usage: %[1]s [options] ls PATH
       %[1]s [options] cat PATH
       %[1]s [options] gateway {list|switch NAME|current}

Options:
`

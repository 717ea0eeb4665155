// Command db_backup copies the skilltrack database to a timestamped
// sibling file. The copy is byte-level, so run it against a quiesced
// server or accept a crash-consistent snapshot.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/garnizeh/skilltrack/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	src := cfg.DatabasePath
	dst := fmt.Sprintf("%s.%s.bak", src, time.Now().UTC().Format("20060102-150405"))

	srcFile, err := os.Open(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}
	defer dstFile.Close()

	n, err := io.Copy(dstFile, srcFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Backed up %s to %s (%d bytes).\n", src, dst, n)
}

// Command sparsedump walks a container store and prints its hierarchy:
// plain groups, sparse datasets (format, shape, nnz) and dense arrays.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/lmittmann/tint"

	"github.com/robert-malhotra/go-h5sparse/container"
	"github.com/robert-malhotra/go-h5sparse/h5sparse"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("sparsedump", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := ValidateConfig(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: cfg.Level()})
	}
	logger := slog.New(handler)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: sparsedump <store-dir>")
		os.Exit(1)
	}
	dir := os.Args[1]

	f, err := h5sparse.Open(dir)
	if err != nil {
		logger.Error("opening store", "dir", dir, "err", err)
		os.Exit(1)
	}
	defer f.Close()
	logger.Debug("store opened", "dir", dir)

	err = h5sparse.Walk(f.Group, func(p string, obj any) error {
		indent := strings.Repeat("  ", depth(p))
		switch o := obj.(type) {
		case *h5sparse.Group:
			fmt.Printf("%s%s/\n", indent, name(p))
			if attrs := o.Raw().AttrNames(); len(attrs) > 0 {
				fmt.Printf("%s  attrs: %v\n", indent, attrs)
			}
		case *h5sparse.Dataset:
			rows, cols := o.Shape()
			nnz, err := o.NNZ()
			if err != nil {
				return err
			}
			fmt.Printf("%s%s  sparse %s (%d, %d) nnz=%d\n", indent, name(p), o.FormatTag(), rows, cols, nnz)
		case *container.Array:
			fmt.Printf("%s%s  array %s[%d]\n", indent, name(p), o.Kind(), o.Len())
		}
		return nil
	})
	if err != nil {
		logger.Error("walking store", "err", err)
		os.Exit(1)
	}
}

func depth(p string) int {
	if p == "/" {
		return 0
	}
	return strings.Count(p, "/")
}

func name(p string) string {
	if p == "/" {
		return "/"
	}
	return p[strings.LastIndex(p, "/")+1:]
}

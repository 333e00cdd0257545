package main

import (
	"io"
	"os"
	"time"

	wikifilter "github.com/alnah/go-wikifilter"
	"github.com/alnah/go-wikifilter/internal/fileutil"
	"github.com/alnah/go-wikifilter/internal/pandoc"
)

// Environment holds injectable dependencies for testability.
// In filter mode Stdout carries the pandoc document, so every
// diagnostic goes to Stderr.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Exists wikifilter.ExistsFunc // Asset check handed to the rewriter
	Pandoc *pandoc.Converter     // Used by the convert command
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Exists: fileutil.FileExists,
		Pandoc: pandoc.NewConverter(),
	}
}

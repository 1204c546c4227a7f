// Package state defines program state shared by all subcommands.
package state

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"bookforge/assets"
	"bookforge/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by export and json subcommands
	Overwrite bool
	// used by import subcommand, nil means detect from content
	CodePage encoding.Encoding
	// rendered in place of images which could not be decoded
	MissingImage []byte

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	panic("program environment is not in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// ForceCodePage makes importer decode every non UTF-8 source with named
// IANA character set instead of detecting it.
func (e *LocalEnv) ForceCodePage(name string) error {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return fmt.Errorf("unknown character set %q: %w", name, err)
	}
	if enc == nil {
		return fmt.Errorf("character set %q is not supported", name)
	}
	e.CodePage = enc
	return nil
}

// CodePageName returns IANA name of the forced code page or empty string.
func (e *LocalEnv) CodePageName() string {
	if e.CodePage == nil {
		return ""
	}
	name, _ := ianaindex.IANA.Name(e.CodePage)
	return name
}

// LoadMissingImage replaces placeholder of images which could not be
// decoded. File must hold decodable raster image or SVG.
func (e *LocalEnv) LoadMissingImage(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read missing image placeholder: %w", err)
	}
	if _, err := assets.Prepare(data, assets.Options{MaxSize: 64}, e.Log); err != nil {
		return fmt.Errorf("missing image placeholder %q: %w", path, err)
	}
	e.MissingImage = data
	return nil
}

// RedirectStdLog sends output of standard library logger into program log
// until RestoreStdLog.
func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}

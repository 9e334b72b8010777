package main

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/five82/dropoff/internal/app"
)

type commandContext struct {
	configFlag *string
	prefsFlag  *string
	verbose    *bool

	envOnce sync.Once
	env     *app.Env
	envErr  error
}

func newCommandContext(configFlag, prefsFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		prefsFlag:  prefsFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) appOptions(pollSeconds int) app.Options {
	opts := app.Options{
		ConfigPath: strings.TrimSpace(*c.configFlag),
		PrefsPath:  strings.TrimSpace(*c.prefsFlag),
		PollEvery:  pollSeconds,
	}
	if c.verbose != nil && *c.verbose {
		opts.LogOutputs = []string{"stderr"}
	}
	return opts
}

// ensureEnv opens config, prefs, logger and the desk once per invocation.
func (c *commandContext) ensureEnv() (*app.Env, error) {
	c.envOnce.Do(func() {
		c.env, c.envErr = app.Open(c.appOptions(0))
	})
	return c.env, c.envErr
}

func (c *commandContext) close() error {
	if c.env == nil {
		return nil
	}
	err := c.env.Close()
	c.env = nil
	return err
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/duyki2208/todo-list/internal/cache"
	"github.com/duyki2208/todo-list/internal/config"
	"github.com/duyki2208/todo-list/internal/exitcode"
	"github.com/duyki2208/todo-list/internal/task"
)

func init() {
	Register(&PrecacheCmd{})
}

// PrecacheCmd installs the app shell: fetches every manifest URL into the
// named resource cache. Any single failure fails the whole install.
type PrecacheCmd struct {
	manifest string
}

// SetManifest overrides the manifest path (for testing).
func (c *PrecacheCmd) SetManifest(path string) {
	c.manifest = path
}

func (c *PrecacheCmd) Name() string      { return "precache" }
func (c *PrecacheCmd) Aliases() []string { return nil }
func (c *PrecacheCmd) Synopsis() string  { return "Fetch the asset manifest into the offline cache" }
func (c *PrecacheCmd) Usage() string     { return "todo precache [--manifest <file>]" }
func (c *PrecacheCmd) NeedsStore() bool  { return false }

func (c *PrecacheCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.manifest, "manifest", "", "")
}

func (c *PrecacheCmd) Run(ctx context.Context, cfg *config.Config, _ task.Store, args []string, out, errOut io.Writer) int {
	var urls []string
	var err error
	if c.manifest != "" {
		urls, err = config.ReadManifest(c.manifest)
	} else {
		urls, err = cfg.Manifest()
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	if len(urls) == 0 {
		fmt.Fprintln(errOut, "error: manifest is empty")
		return exitcode.UserError
	}

	rc, err := cache.Open(cfg.CacheDir(), cfg.CacheName, cache.WithOrigin(cfg.Origin))
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.BackendError
	}
	defer rc.Close()

	if err := rc.Precache(ctx, urls); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "cached %d resources into %s\n", len(urls), cfg.CacheName)
	}
	return exitcode.Success
}

// config.go implements the "dagw config" command for configuration management.
//
// Separated from extension.go to isolate config-specific logic including
// the local vs global config precedence rules.
//
// Design: Config follows a cascade model similar to git: local config
// (.dagw/config.yaml) takes precedence over global (~/.dagw/config.yaml).
// The --local flag forces use of local config even if it doesn't exist yet.

package core

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/cmd"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/extension"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/config"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/log"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  dagw config                             # show config
  dagw config validate.encoding_lines     # show one value
  dagw config validate.check_encoding true

Keys:
  validate.check_encoding  run the encoding check by default (false)
  validate.encoding_lines  lines read per file by the encoding check (51)
  log.level                debug, info, warn or error (info)
  log.audit                record runs for 'dagw history' (true)
  tweets.license           LICENSE text of tweet sections
  tweets.timezone          zone of date_built in tweet sections (Europe/Copenhagen)

Configuration locations:
  Global: ~/.dagw/config.yaml
  Local:  .dagw/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cmd.Args(cobra.MaximumNArgs(2)),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.dagw/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	// Load config: local if exists, otherwise global
	// --local flag forces local even if it doesn't exist yet
	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		all := cfg.All()
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}
		log.Event("core:config", "list").Write(nil)

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Detail("key", args[0]).Write(err)
		if err != nil {
			return fmt.Errorf("config get %q: %w", args[0], err)
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		// Set value - write to same place we read from
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Detail("key", args[0]).Write(err)
			return fmt.Errorf("config set %q: %w", args[0], err)
		}

		saveErr := cfg.Save()
		log.Event("core:config", "set").
			Detail("key", args[0]).
			Detail("value", args[1]).
			Detail("scope", scopeName).
			Write(saveErr)
		if saveErr != nil {
			return fmt.Errorf("config save: %w", saveErr)
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}

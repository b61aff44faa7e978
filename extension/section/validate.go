// validate.go implements the "dagw validate" command.
//
// Separated from section.go to isolate the run sequence: the unexpanded
// section gate, the ordered checks, the summary log and the ledger event.
//
// Design: A failed check returns validate.ErrChecksFailed after the
// messages have been logged, so the root command exits 1 without printing
// anything further.

package section

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/cmd"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/extension"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/config"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/validate"
)

func newValidateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "validate <input>",
		Short: "Validate a corpus section",
		Long: `Validates the section in the directory <input>.

  dagw validate corpus/twfv19              # structure and metadata
  dagw validate corpus/twfv19 --check_enc  # also check UTF-8 (slow)

Exits 0 when every check passed or the section has not been expanded,
1 when a check failed and 2 on a usage error.`,
		Args: cmd.Args(cobra.ExactArgs(1)),
		RunE: runValidate,
	}
	c.Flags().Bool(extension.FlagCheckEnc, false, "Check that files are UTF-8 encoded (slow)")
	c.Flags().Int(extension.FlagEncodingLines, config.DefaultEncodingLines, "Lines read per file by the encoding check")
	return c
}

// validateJSON is the --format json output of a run.
type validateJSON struct {
	Section   string   `json:"section"`
	Namespace string   `json:"namespace"`
	Skipped   bool     `json:"skipped"`
	Passed    []string `json:"passed"`
	Failed    []string `json:"failed"`
	Messages  []string `json:"messages"`
}

func runValidate(c *cobra.Command, args []string) error {
	cfg := cmd.Config()
	logger := cmd.Logger()

	checkEnc := cfg.CheckEncoding()
	if c.Flags().Changed(extension.FlagCheckEnc) {
		checkEnc, _ = c.Flags().GetBool(extension.FlagCheckEnc)
	}
	lines := cfg.EncodingLines()
	if c.Flags().Changed(extension.FlagEncodingLines) {
		lines, _ = c.Flags().GetInt(extension.FlagEncodingLines)
	}
	if lines < config.MinEncodingLines || lines > config.MaxEncodingLines {
		return cmd.Usagef("--%s must be between %d and %d, got %d",
			extension.FlagEncodingLines, config.MinEncodingLines, config.MaxEncodingLines, lines)
	}

	logger.Info("STARTED")
	s, err := validate.Open(args[0])
	if err != nil {
		return fmt.Errorf("validate %s: %w", args[0], err)
	}
	logger.Info("Validating section " + s.Namespace)

	if s.Unexpanded() {
		logger.Info(`The section appears to have a "raw_data" directory whose content has not been ` +
			"expanded. Stopping validation until the section is expanded.")
		cmd.Fire(extension.SectionSkippedEvent{Path: s.Path, Namespace: s.Namespace})
		logger.Info("DONE")
		return cmd.PrintJSON(validateJSON{Section: s.Path, Namespace: s.Namespace, Skipped: true})
	}

	if !checkEnc {
		logger.Info("Skipping encoding validation")
	}

	v := validate.New(validate.Options{CheckEncoding: checkEnc, EncodingLines: lines})
	sum, err := v.Run(s)
	if err != nil {
		cmd.Fire(extension.SectionValidatedEvent{Path: s.Path, Namespace: s.Namespace, Encoding: checkEnc, Err: err})
		return fmt.Errorf("validate %s: %w", s.Path, err)
	}
	sum.Log(logger)

	var runErr error
	if !sum.OK() {
		runErr = validate.ErrChecksFailed
	}
	cmd.Fire(extension.SectionValidatedEvent{
		Path:      s.Path,
		Namespace: s.Namespace,
		Encoding:  checkEnc,
		Summary:   sum,
		Err:       runErr,
	})

	if err := cmd.PrintJSON(validateJSON{
		Section:   s.Path,
		Namespace: s.Namespace,
		Passed:    validate.Names(sum.Passed()),
		Failed:    validate.Names(sum.Failed()),
		Messages:  sum.Messages(),
	}); err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("DONE")
	return nil
}

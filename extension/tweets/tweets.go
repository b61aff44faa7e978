// Package tweets provides the tweets extension for dagw.
// It registers the tweets command, which builds a section from hydrated
// tweets.
package tweets

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/cmd"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/extension"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/path"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/progress"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/tweets"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tweets extension.
type Extension struct{}

var _ extension.Extension = (*Extension)(nil)

// Name returns "tweets".
func (e *Extension) Name() string { return "tweets" }

// Commands returns the tweets command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{newTweetsCmd()}
}

func newTweetsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tweets",
		Short: "Turn a hydrated tweet file into a section",
		Long: `Turns tweets from a hydrated JSONL file into a section.

  dagw tweets --input hydrated.jsonl --section_name twfv19 --output corpus/twfv19

The LICENSE text and the time zone of date_built come from the
tweets.license and tweets.timezone settings. An existing output
directory is replaced only with --force.`,
		Args: cmd.Args(cobra.NoArgs),
		RunE: runTweets,
	}
	c.Flags().String(extension.FlagInput, "", "Input file")
	c.Flags().String(extension.FlagSectionName, "", "Name of resulting section")
	c.Flags().String(extension.FlagOutput, "", "Output directory")
	return c
}

// tweetsJSON is the --format json output.
type tweetsJSON struct {
	Section   string `json:"section"`
	Namespace string `json:"namespace"`
	DocID     string `json:"doc_id"`
	Tweets    int    `json:"tweets"`
	Written   int    `json:"written"`
	DateBuilt string `json:"date_built"`
}

func runTweets(c *cobra.Command, _ []string) error {
	if err := cmd.RequireFlags(c, extension.FlagInput, extension.FlagSectionName, extension.FlagOutput); err != nil {
		return err
	}
	input, _ := c.Flags().GetString(extension.FlagInput)
	namespace, _ := c.Flags().GetString(extension.FlagSectionName)
	output, _ := c.Flags().GetString(extension.FlagOutput)

	cfg := cmd.Config()
	logger := cmd.Logger()

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("tweets.timezone: %w", err)
	}

	logger.Info("STARTED")
	logger.Info("Will read tweets from JSONL file: " + input)
	if !path.Matches(output, namespace) {
		logger.Warn("Output directory is not named after the section; validate will reject it",
			"output", output, "section_name", namespace)
	}

	res, err := tweets.Expand(tweets.Options{
		Input:     input,
		Output:    output,
		Namespace: namespace,
		License:   cfg.TweetsLicense(),
		Location:  loc,
		Force:     cmd.Force(),
		Progress:  progress.Stderr("Processing tweet", progress.DefaultEvery),
	})

	evt := extension.SectionExpandedEvent{Path: output, Namespace: namespace, Input: input, Err: err}
	if res != nil {
		evt.Tweets, evt.Written = res.Tweets, res.Written
	}
	cmd.Fire(evt)

	if err != nil {
		return fmt.Errorf("tweets: %w", err)
	}

	logger.Info(fmt.Sprintf("Wrote %d of %d tweets to %s", res.Written, res.Tweets, res.DocID))
	if err := cmd.PrintJSON(tweetsJSON{
		Section:   res.Path,
		Namespace: namespace,
		DocID:     res.DocID,
		Tweets:    res.Tweets,
		Written:   res.Written,
		DateBuilt: res.Built,
	}); err != nil {
		return err
	}
	logger.Info("DONE")
	return nil
}

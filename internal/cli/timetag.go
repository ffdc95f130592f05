package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewTimeTagCommand creates the timetag command.
func NewTimeTagCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "timetag <time>",
		Short: "Convert between times and OSC time tags",
		Long: `Convert between times and OSC time tags.

<time> is "now", "immediate", an offset such as "+1.5s", an RFC 3339 time,
or a 64-bit NTP time tag in hex.

Example:
  oscroute timetag 1970-01-01T00:00:00.5Z
  oscroute timetag 0x83aa7e8080000000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := parseTimeTag(args[0], time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ntp:       0x%016x\n", tag.Uint64())
			if tag.IsImmediate() {
				fmt.Fprintln(out, "time:      immediate")
				return nil
			}
			fmt.Fprintf(out, "seconds:   %d\n", tag.SecondsSinceEpoch())
			fmt.Fprintf(out, "fraction:  %d (%s)\n", tag.FractionalSecond(), formatFraction(tag.FractionalSecond()))
			fmt.Fprintf(out, "time:      %s\n", tag)
			return nil
		},
	}
}

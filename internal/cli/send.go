package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chabad360/oscaddress/address"
	"github.com/chabad360/oscaddress/internal/demo"
	"github.com/chabad360/oscaddress/osc"
)

// SendOptions holds flags for the send command.
type SendOptions struct {
	*RootOptions
	To  string
	At  string
	Raw bool
}

// NewSendCommand creates the send command.
func NewSendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SendOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "send <address> [argument...]",
		Short: "Send an OSC message",
		Long: `Send an OSC message.

Arguments are strings unless prefixed with an OSC type tag:
  i:42  h:42  f:1.5  d:1.5  s:text  b:cafe  t:now  T  F  N

The message is decoded as a service message before it is sent, unless --raw
is given. With --at it is wrapped in a bundle carrying that time tag.

Example:
  oscroute send /renderer/42/say "HELLO, WORLD!"
  oscroute send --at +2s /routegraph/add_edge i:1 i:2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendMessage(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", "", "destination address (default: listen address from config)")
	cmd.Flags().StringVar(&opts.At, "at", "", "send inside a bundle with this time tag")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "skip decoding the message before sending")

	return cmd
}

func sendMessage(opts *SendOptions, args []string, cmd *cobra.Command) error {
	msg := osc.NewMessage(args[0])
	for _, a := range args[1:] {
		v, err := parseArgument(a)
		if err != nil {
			return err
		}
		msg.Arguments = append(msg.Arguments, v)
	}

	if !opts.Raw {
		if _, err := address.Unmarshal(msg, demo.ParseToplevel); err != nil {
			return fmt.Errorf("%s: %w", msg.Address, err)
		}
	}

	var packet osc.Packet = msg
	if opts.At != "" {
		tag, err := parseTimeTag(opts.At, time.Now())
		if err != nil {
			return err
		}
		packet = &osc.Bundle{Timetag: tag, Elements: []osc.Packet{msg}}
	}

	to := opts.To
	if to == "" {
		to = opts.Config.Listen
	}

	client, err := osc.DialContext(cmd.Context(), to)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Send(packet); err != nil {
		return err
	}

	opts.Logger.Debug("sent", zap.String("to", to), zap.Stringer("message", msg))
	fmt.Fprintf(cmd.OutOrStdout(), "sent %s\n", msg)
	return nil
}

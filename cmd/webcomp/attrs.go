package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/webcomp-dev/webcomp/pkg/element"
	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

// attrsResult is the JSON printed by the attrs command.
type attrsResult struct {
	Tag   string        `json:"tag,omitempty"`
	Props vdom.Props    `json:"props"`
	Flags element.Flags `json:"flags"`
}

func attrsCmd(c *cli) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "attrs name=value...",
		Short: "Show the props an element derives from its attributes",
		Long: `Apply attributes to an element and print the derived props and flags.

Dashed names become camel-cased props. Values that parse as JSON are
decoded, empty values become true and anything else stays a string.
Attributes prefixed with w: set element flags instead.

Examples:
  webcomp attrs data-count=5 label=Clicks disabled
  webcomp attrs --tag my-counter w:protected 'config={"step":2}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.attrs(tag, args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Validate this custom element tag")

	return cmd
}

// attrs applies args as one attribute batch.
func (c *cli) attrs(tag string, args []string) (*attrsResult, error) {
	if tag != "" {
		if err := element.ValidateTag(tag); err != nil {
			return nil, err
		}
	}

	batch := make([]element.Attr, 0, len(args))
	for _, arg := range args {
		name, value, _ := strings.Cut(arg, "=")
		batch = append(batch, element.Attr{Name: name, Value: value})
	}

	b := element.NewBridge(element.WithBridgeLogger(c.logger))
	if err := b.ApplyAttributes(batch); err != nil {
		return nil, err
	}
	return &attrsResult{Tag: tag, Props: b.Props(), Flags: b.Flags()}, nil
}

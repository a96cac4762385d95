package main

import (
	"github.com/spf13/cobra"

	"github.com/webcomp-dev/webcomp/pkg/routepath"
	"github.com/webcomp-dev/webcomp/pkg/router"
)

// matchResult is the JSON printed by the match command.
type matchResult struct {
	Pattern string            `json:"pattern"`
	Path    string            `json:"path"`
	Matched bool              `json:"matched"`
	Params  map[string]string `json:"params,omitempty"`
	Query   routepath.Query   `json:"query,omitempty"`
}

func matchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "match <pattern> <path>",
		Short: "Match a route pattern against a path",
		Long: `Match a route pattern against a path and print the result as JSON.

The path may carry a query string. Patterns use the router syntax:
named parameters (:id), custom expressions (:id(\d+)), wildcards
(/static/*) and the catch-all (*).

Examples:
  webcomp match /users/:id /users/42
  webcomp match '/users/:id(\d+)' '/users/42?tab=posts'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.match(args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

// match dispatches path on a server-side router holding only pattern.
func (c *cli) match(pattern, path string) (*matchResult, error) {
	opts := append(c.config.RouterOptions(), router.WithLogger(c.logger))
	r, err := router.New(opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	clean, _ := routepath.SplitFragment(path)
	res := &matchResult{Pattern: pattern, Path: clean}
	if _, err := r.On(pattern, func(m router.Match) {
		res.Matched = true
		res.Path = m.Path
		res.Params = m.Params
		res.Query = m.Query
	}, false); err != nil {
		return nil, err
	}
	if err := r.Dispatch(path); err != nil {
		return nil, err
	}
	return res, nil
}

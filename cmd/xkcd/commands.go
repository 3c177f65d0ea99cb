package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vrsandeep/xkcd-go/internal/core"
	"github.com/vrsandeep/xkcd-go/internal/version"
	"github.com/vrsandeep/xkcd-go/xkcd"
)

// fetcher is what the get and latest commands need from *xkcd.Client.
type fetcher interface {
	Get(number uint32) (*xkcd.Comic, error)
	Latest() (*xkcd.Comic, error)
}

// newFetcher builds the client from config. Replaced in tests.
var newFetcher = func() (fetcher, error) {
	app, err := core.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return app.Client, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "xkcd",
		Short:        "Fetch xkcd comic metadata",
		SilenceUsage: true,
	}

	root.AddCommand(newGetCmd())
	root.AddCommand(newLatestCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newGetCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get <number>",
		Short: "Fetch a comic by number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			num, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid comic number %q", args[0])
			}
			f, err := newFetcher()
			if err != nil {
				return err
			}
			comic, err := f.Get(uint32(num))
			if err != nil {
				return err
			}
			return printComic(cmd.OutOrStdout(), comic, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comic as JSON")
	return cmd
}

func newLatestCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Fetch the most recent comic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFetcher()
			if err != nil {
				return err
			}
			comic, err := f.Latest()
			if err != nil {
				return err
			}
			return printComic(cmd.OutOrStdout(), comic, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comic as JSON")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Version: %s\n", version.String())
		},
	}
}

func printComic(w io.Writer, c *xkcd.Comic, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	fmt.Fprintf(w, "Comic Number %d: '%s'\n", c.Num, c.Title)
	fmt.Fprintf(w, "Published: %s\n", c.Date.Format("2006-01-02"))
	fmt.Fprintf(w, "Image: %s\n", c.Img)
	fmt.Fprintf(w, "Alt: %s\n", c.Alt)
	if c.Link != "" {
		fmt.Fprintf(w, "Link: %s\n", c.Link)
	}
	if news := c.NewsText(); news != "" {
		fmt.Fprintf(w, "News: %s\n", news)
	}
	return nil
}

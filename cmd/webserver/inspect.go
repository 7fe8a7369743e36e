package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Brownie44l1/webserver/internal/content"
	"github.com/Brownie44l1/webserver/internal/request"
	"github.com/Brownie44l1/webserver/internal/response"
)

func newInspectCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Parse a raw request and show how it would be answered",
		Long: `Read one raw HTTP request from file (or stdin when no file is given),
print the parsed request line and headers, and show the status line and
content type the server would answer it with against --root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runInspect(cmd.OutOrStdout(), in, root)
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "document root to resolve against")
	return cmd
}

func runInspect(w io.Writer, in io.Reader, root string) error {
	req, err := request.Read(in, os.DirFS(root))
	if err != nil {
		return fmt.Errorf("parse request: %w", err)
	}

	fmt.Fprintln(w, "Request Line")
	fmt.Fprintf(w, "  Method:  %s\n", req.Method)
	fmt.Fprintf(w, "  Target:  %s\n", req.Target)
	fmt.Fprintf(w, "  Version: %s\n", req.Version)

	fmt.Fprintln(w, "Headers")
	req.Headers.Each(func(name, value string) error {
		_, err := fmt.Fprintf(w, "  %s: %s\n", name, value)
		return err
	})
	if req.SkippedHeaders > 0 {
		fmt.Fprintf(w, "  (%d malformed lines skipped)\n", req.SkippedHeaders)
	}

	status := response.StatusFor(req.Found())
	fmt.Fprintln(w, "Response")
	fmt.Fprintf(w, "  Status:       %d %s\n", status, response.StatusText(status))
	fmt.Fprintf(w, "  Content-Type: %s\n", content.TypeFor(req.Resource))
	switch {
	case req.Resource != nil:
		fmt.Fprintf(w, "  Resource:     %s (%d bytes)\n", req.Resource.Path, req.Resource.Size)
	case req.LandingPage:
		fmt.Fprintln(w, "  Resource:     landing page")
	}
	return nil
}

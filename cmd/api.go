package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Inxkls/xerces/internal/shared"
)

// APISearch prints the raw album.search response for the query argument.
func (r *Runner) APISearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}
	return r.apiCall(ctx, "album.search", map[string]string{"album": query}, cmd.Bool("pretty"))
}

// APIInfo prints the raw album.getinfo response for --artist and --album.
func (r *Runner) APIInfo(ctx context.Context, cmd *cli.Command) error {
	params := map[string]string{"artist": cmd.String("artist"), "album": cmd.String("album")}
	return r.apiCall(ctx, "album.getinfo", params, cmd.Bool("pretty"))
}

func (r *Runner) apiCall(ctx context.Context, method string, params map[string]string, pretty bool) error {
	if err := r.requireAPIKey(); err != nil {
		return err
	}

	r.logger.Info("GET request", "method", method)

	resp, err := r.api.Method(ctx, method, params)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, pretty)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}

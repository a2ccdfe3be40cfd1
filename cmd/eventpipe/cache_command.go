package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"eventpipe/internal/geocode"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the geocode cache",
	}
	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheCountCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func (c *commandContext) openCache() (*geocode.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.newLogger()
	if err != nil {
		return nil, err
	}
	return geocode.NewCache(cfg.GeocodeCachePath(), logger), nil
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached geocode lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}
			entries := cache.List()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Geocode cache is empty")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				lat, lng := "", ""
				if entry.Found {
					lat = strconv.FormatFloat(entry.Lat, 'f', 4, 64)
					lng = strconv.FormatFloat(entry.Lng, 'f', 4, 64)
				}
				rows = append(rows, []string{
					entry.Name,
					yesNo(entry.Found),
					lat,
					lng,
					time.Unix(entry.ResolvedAt, 0).Format("2006-01-02 15:04"),
				})
			}
			writeTable(cmd.OutOrStdout(),
				[]string{"Location", "Found", "Lat", "Lng", "Resolved"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft})
			return nil
		},
	}
}

func newCacheCountCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show geocode cache entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}
			found, notFound := cache.Count()
			fmt.Fprintf(cmd.OutOrStdout(), "%d cached lookups (%d found, %d not found)\n",
				found+notFound, found, notFound)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all geocode cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("cache clear discards every cached lookup; rerun with --yes to confirm")
			}
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}
			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Geocode cache cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm clearing the cache")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

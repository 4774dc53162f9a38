package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage downloaded track sources",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newResolver(cfg)
		if err != nil {
			return err
		}
		entries, err := res.Entries()
		if err != nil {
			return err
		}

		if JSONOutput() {
			return PrintJSON(entries)
		}
		if len(entries) == 0 {
			fmt.Println(mutedStyle.Render("cache is empty"))
			return nil
		}

		var total int64
		table := NewTable("FILE", "SIZE", "FETCHED")
		for _, e := range entries {
			total += e.Size
			table.Row(filepath.Base(e.Path), humanize.Bytes(uint64(e.Size)), humanize.Time(e.ModTime))
		}
		table.Flush()
		fmt.Printf("\n%d files, %s in %s\n", len(entries), humanize.Bytes(uint64(total)), res.CacheDir())
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached source",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newResolver(cfg)
		if err != nil {
			return err
		}
		freed, err := res.Clear()
		if err != nil {
			return err
		}
		if JSONOutput() {
			return PrintJSON(map[string]int64{"freed_bytes": freed})
		}
		fmt.Printf("Freed %s\n", humanize.Bytes(uint64(freed)))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// Command zoneinfo inspects the built-in sample zones. It exists to poke at
// rule sets from the command line: listing transitions and classifying
// local date-times as unique, skipped or repeated.
package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-zonerules/localtime"
	"github.com/ngrash/go-zonerules/zonerules"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zoneinfo",
		Short: "Inspect sample time zone rules",
		Long: `Zoneinfo resolves declarative zone descriptions into offset timelines
and answers queries against them. It ships a few simplified sample zones.`,
	}
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(transitionsCmd())
	rootCmd.AddCommand(resolveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the sample zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			zones, err := sampleZones()
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(zones))
			for id := range zones {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Printf("%-20s standard %v\n", id, zones[id].FirstStandardOffset())
			}
			return nil
		},
	}
}

func transitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transitions <zone>",
		Short: "Print the offset transitions of a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := lookupZone(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("zone %s\n", rules.ID())
			fmt.Printf("initial offset %v\n", rules.FirstOffset())
			for _, trans := range rules.Transitions() {
				fmt.Printf("  %v\n", trans)
			}
			if tail := rules.TailRules(); len(tail) > 0 {
				fmt.Println("recurring every year:")
				for _, rule := range tail {
					fmt.Printf("  %v\n", rule)
				}
			}
			return nil
		},
	}
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <zone> <datetime>",
		Short: "Classify a local date-time, e.g. 2026-03-29T02:30:00",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := lookupZone(args[0])
			if err != nil {
				return err
			}
			dt, err := parseDateTime(args[1])
			if err != nil {
				return err
			}
			info := rules.Resolve(dt)
			switch info.Kind() {
			case zonerules.Single:
				offset, _ := info.Offset()
				fmt.Printf("%v occurs once, offset %v\n", dt, offset)
			case zonerules.Gap:
				trans, _ := info.Transition()
				fmt.Printf("%v does not occur, clocks jump from %v to %v at %v\n",
					dt, trans.Before, trans.After, trans.DateTime)
			case zonerules.Overlap:
				trans, _ := info.Transition()
				fmt.Printf("%v occurs twice, first at %v then at %v\n",
					dt, trans.Before, trans.After)
			}
			return nil
		},
	}
}

func lookupZone(id string) (*zonerules.Rules, error) {
	zones, err := sampleZones()
	if err != nil {
		return nil, err
	}
	rules, ok := zones[id]
	if !ok {
		return nil, fmt.Errorf("unknown zone %q, try the list command", id)
	}
	return rules, nil
}

func parseDateTime(s string) (localtime.DateTime, error) {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return localtime.DateTime{}, fmt.Errorf("invalid date-time %q: %w", s, err)
	}
	year, month, day := t.Date()
	hour, minute, second := t.Clock()
	return localtime.NewDateTime(year, month, day, hour, minute, second)
}

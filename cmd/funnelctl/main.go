package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Martin212038201938/FunnyFunnel/internal/profile"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/client"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	outFlag := flag.String("o", "", "output file for export")
	flag.Parse()

	profileName := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(profileName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	addr := profile.ReadAddr(profileName)
	if addr == "" {
		fmt.Fprintf(os.Stderr, "error: no daemon running for profile %q\n", profileName)
		os.Exit(1)
	}
	c := client.New(addr)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch args[0] {
	case "status":
		cmdStatus(ctx, c, profileName, addr, *jsonFlag)
	case "stats":
		cmdStats(ctx, c, *jsonFlag)
	case "leads":
		cmdLeads(ctx, c, *jsonFlag)
	case "export":
		cmdExport(ctx, c, *outFlag)
	case "seed":
		cmdSeed(ctx, c, *jsonFlag)
	case "search":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: funnelctl search <keywords>")
			os.Exit(1)
		}
		cmdSearch(ctx, c, strings.Join(args[1:], " "), *jsonFlag)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: funnelctl [--profile <name>] [--json] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  status             Show daemon status")
	fmt.Fprintln(os.Stderr, "  stats              Show pipeline counters")
	fmt.Fprintln(os.Stderr, "  leads              List leads")
	fmt.Fprintln(os.Stderr, "  export [-o file]   Export leads as CSV")
	fmt.Fprintln(os.Stderr, "  seed               Create demo leads")
	fmt.Fprintln(os.Stderr, "  search <keywords>  Search job postings")
}

func cmdStatus(ctx context.Context, c *client.Client, profileName, addr string, jsonOut bool) {
	err := c.Health(ctx)
	if jsonOut {
		outputJSON(map[string]any{
			"profile": profileName,
			"addr":    addr,
			"healthy": err == nil,
		})
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: daemon at %s not healthy: %v\n", addr, err)
		os.Exit(1)
	}
	fmt.Printf("Profil: %s\n", profileName)
	fmt.Printf("Daemon: %s (ok)\n", addr)
}

func cmdStats(ctx context.Context, c *client.Client, jsonOut bool) {
	stats, err := c.GetStats(ctx)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(stats)
		return
	}
	fmt.Printf("Leads gesamt:         %d\n", stats.Total)
	fmt.Printf("Neu:                  %d\n", stats.New)
	fmt.Printf("Aktiviert:            %d\n", stats.Activated)
	fmt.Printf("Recherchiert:         %d\n", stats.Researched)
	fmt.Printf("Anschreiben erstellt: %d\n", stats.Letter)
	fmt.Printf("Angeschrieben:        %d\n", stats.Contacted)
	fmt.Printf("Antwort erhalten:     %d\n", stats.Replied)
}

func cmdLeads(ctx context.Context, c *client.Client, jsonOut bool) {
	leads, err := c.ListLeads(ctx, "", "")
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(leads)
		return
	}
	if len(leads) == 0 {
		fmt.Println("Keine Leads vorhanden.")
		return
	}
	for _, l := range leads {
		company := l.CompanyName
		if company == "" {
			company = "-"
		}
		fmt.Printf("%4d  %-20s  %-30s  %s\n", l.ID, l.Status.Label(), company, l.Title)
	}
}

func cmdExport(ctx context.Context, c *client.Client, out string) {
	name, data, err := c.Export(ctx)
	if err != nil {
		fatal(err)
	}
	if out != "" {
		name = out
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("Exportiert: %s (%d Bytes)\n", name, len(data))
}

func cmdSeed(ctx context.Context, c *client.Client, jsonOut bool) {
	created, message, err := c.SeedDemo(ctx)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(map[string]any{"created": created, "message": message})
		return
	}
	fmt.Println(message)
}

func cmdSearch(ctx context.Context, c *client.Client, keywords string, jsonOut bool) {
	postings, err := c.SearchPostings(ctx, client.SearchOptions{Keywords: keywords})
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(postings)
		return
	}
	if len(postings) == 0 {
		fmt.Println("Keine Treffer.")
		return
	}
	for _, p := range postings {
		fmt.Printf("%-40s  %-24s  %s\n", p.Title, p.CompanyName, p.SourceURL)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "json encode error: %v\n", err)
	}
}

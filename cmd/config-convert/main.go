// Command config-convert converts a YAML configuration file into a SQLite
// configuration database for the glazecalc daemon.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glazecalc/glazecalc/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML configuration file (required)")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite database file (required)")
		force      = flag.Bool("force", false, "Overwrite existing SQLite database")
		dryRun     = flag.Bool("dry-run", false, "Show what would be done without executing")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <config.yaml> -sqlite <config.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if _, err := os.Stat(*yamlFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: YAML file does not exist: %s\n", *yamlFile)
		os.Exit(1)
	}

	if _, err := os.Stat(*sqliteFile); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: SQLite file already exists: %s\n", *sqliteFile)
		fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different filename\n")
		os.Exit(1)
	}

	fmt.Printf("Converting YAML configuration to SQLite...\n")
	fmt.Printf("  Source: %s\n", *yamlFile)
	fmt.Printf("  Target: %s\n", *sqliteFile)

	fmt.Printf("Loading YAML configuration...\n")
	yamlProvider := config.NewYAMLProvider(*yamlFile)
	configData, err := yamlProvider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading YAML configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  Loaded server config (port %d), %d presets\n", configData.Server.Port, len(configData.Presets))

	if *dryRun {
		printConfigSummary(configData)
		fmt.Println("DRY RUN complete - no database created")
		return
	}

	if *force {
		os.Remove(*sqliteFile)
	}

	sqliteProvider, err := config.NewSQLiteProvider(*sqliteFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating SQLite provider: %v\n", err)
		os.Exit(1)
	}
	defer sqliteProvider.Close()

	if err := sqliteProvider.CreateSchema(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating schema: %v\n", err)
		os.Exit(1)
	}
	if err := sqliteProvider.SaveConfig(configData); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Conversion complete: %s\n", *sqliteFile)
}

func printConfigSummary(configData *config.ConfigData) {
	fmt.Printf("\nConfiguration summary:\n")
	fmt.Printf("  Server: %s:%d (read timeout %ds, write timeout %ds)\n",
		configData.Server.ListenAddr, configData.Server.Port,
		configData.Server.ReadTimeout, configData.Server.WriteTimeout)
	fmt.Printf("  Default preset: %q\n", configData.Defaults.Preset)
	fmt.Printf("  Recess effectiveness: %g\n", configData.Defaults.RecessEffectiveness)
	fmt.Printf("  Strict areas: %v\n", configData.Defaults.StrictAreas)
	for _, p := range configData.Presets {
		fmt.Printf("  Preset %q: (%.3f -> %.3f), (%.3f -> %.3f) %s\n",
			p.Name, p.GlassU1, p.TotalU1, p.GlassU2, p.TotalU2, p.Unit)
	}
}

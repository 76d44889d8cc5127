// layerfill is a command-line tool for batch-filling layered document
// templates from tabular records.
//
// It reads a template layout (YAML), a data file (comma-separated text or
// an .xlsx workbook) and an optional run configuration, fills up to the
// configured number of records into one duplicated instance, and prints a
// run summary.
//
// Usage:
//
//	layerfill -layout template.yaml -data profiles.csv [options]
//
// Required flags:
//
//	-layout string    Path to the YAML template layout
//
// Input options (one required; exiting cleanly when neither is given):
//
//	-data string      Path to a comma-separated data file
//	-workbook string  Path to an .xlsx workbook (first sheet)
//
// Processing options:
//
//	-config string    Path to a YAML run configuration
//	-log string       Append warnings and progress to this file
//	-strict           Fail slot resolution when a subgroup is missing
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/javajack/layerfill"
	"github.com/javajack/layerfill/memdoc"
)

func main() {
	layoutPath := flag.String("layout", "", "Path to the YAML template layout")
	dataPath := flag.String("data", "", "Path to a comma-separated data file")
	workbookPath := flag.String("workbook", "", "Path to an .xlsx workbook")
	configPath := flag.String("config", "", "Path to a YAML run configuration")
	logPath := flag.String("log", "", "Append log output to this file")
	strict := flag.Bool("strict", false, "Fail slot resolution when a subgroup is missing")
	flag.Parse()

	// No data source selected is a clean exit, not an error.
	if *dataPath == "" && *workbookPath == "" {
		fmt.Println("No data file selected, nothing to do.")
		return
	}
	if *layoutPath == "" {
		fmt.Println("Error: must provide -layout path")
		os.Exit(1)
	}

	tpl, err := memdoc.LoadLayoutFile(*layoutPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	var opts []layerfill.Option
	if *configPath != "" {
		cfg, err := layerfill.LoadConfig(*configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, cfg.Options()...)
	}
	if *strict {
		opts = append(opts, layerfill.WithStrictSubgroups(true))
	}
	if *logPath != "" {
		logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Printf("Error: open log file: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		opts = append(opts, layerfill.WithLogger(logFile))
	}

	var sum *layerfill.Summary
	if *dataPath != "" {
		sum, err = layerfill.FillCSVFile(tpl, *dataPath, opts...)
	} else {
		sum, err = layerfill.FillWorkbookFile(tpl, *workbookPath, opts...)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Processed %d record(s).\n", sum.Processed)
	for _, issue := range sum.Issues {
		fmt.Printf("  warning: %s\n", issue)
	}
	if !sum.Clean() {
		fmt.Printf("%d issue(s) reported.\n", len(sum.Issues))
	}
}

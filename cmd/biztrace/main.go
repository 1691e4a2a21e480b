package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dd0wney/biztrace/pkg/logging"
	"github.com/dd0wney/biztrace/pkg/model"
	"github.com/dd0wney/biztrace/pkg/orchestration"
	"github.com/dd0wney/biztrace/pkg/schema"
	"github.com/dd0wney/biztrace/pkg/traceability"
	"github.com/dd0wney/biztrace/pkg/validation"
)

const usage = `biztrace - business specification traceability

Usage:
  biztrace graph    -business <file>            Emit the traceability graph as JSON
  biztrace validate -business <file>            Run cross-layer validation
  biztrace stats    -business <file>            Print graph statistics
  biztrace path     -business <file> -from <id> -to <id>   Shortest connection (undirected)
  biztrace paths    -business <file> -from <id> -to <id>   All directed paths
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(os.Getenv("LOG_LEVEL")))
	resolver := orchestration.NewResolver(schema.NewRegistry(), logger)

	var err error
	switch os.Args[1] {
	case "graph":
		err = runGraph(resolver, os.Args[2:])
	case "validate":
		err = runValidate(resolver, os.Args[2:])
	case "stats":
		err = runStats(resolver, os.Args[2:])
	case "path":
		err = runPath(resolver, os.Args[2:], false)
	case "paths":
		err = runPath(resolver, os.Args[2:], true)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "biztrace: %v\n", err)
		os.Exit(1)
	}
}

// resolveAndBuild is the shared resolve-then-build pipeline for graph commands.
func resolveAndBuild(resolver *orchestration.Resolver, businessFile string) (*traceability.Graph, error) {
	if businessFile == "" {
		return nil, fmt.Errorf("-business flag is required")
	}
	ob, err := resolver.Resolve(businessFile)
	if err != nil {
		return nil, err
	}
	return traceability.Build(ob), nil
}

func runGraph(resolver *orchestration.Resolver, args []string) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	businessFile := fs.String("business", "", "Path to the root business document")
	fs.Parse(args)

	graph, err := resolveAndBuild(resolver, *businessFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(graph)
}

func runValidate(resolver *orchestration.Resolver, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	businessFile := fs.String("business", "", "Path to the root business document")
	asJSON := fs.Bool("json", false, "Emit the report as JSON instead of styled text")
	fs.Parse(args)

	if *businessFile == "" {
		return fmt.Errorf("-business flag is required")
	}
	ob, err := resolver.Resolve(*businessFile)
	if err != nil {
		return err
	}

	result := validation.ValidateCrossLayerReferences(ob)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		fmt.Print(renderReport(ob.Business.Title, result))
	}

	if !result.IsValid {
		os.Exit(1)
	}
	return nil
}

func runStats(resolver *orchestration.Resolver, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	businessFile := fs.String("business", "", "Path to the root business document")
	fs.Parse(args)

	graph, err := resolveAndBuild(resolver, *businessFile)
	if err != nil {
		return err
	}

	stats := traceability.Stats(graph)
	fmt.Printf("Nodes: %d\n", stats.TotalNodes)
	fmt.Printf("Edges: %d\n", stats.TotalEdges)
	fmt.Println("\nNodes by layer:")
	for _, layer := range model.AllLayers {
		if count, ok := stats.NodesByLayer[layer]; ok {
			fmt.Printf("  %-22s %d\n", layer, count)
		}
	}
	fmt.Println("\nEdges by type:")
	for _, edgeType := range []string{
		traceability.EdgeContains, traceability.EdgeReferences,
		traceability.EdgeAddresses, traceability.EdgeImpacts,
		traceability.EdgeDrives, traceability.EdgeRequires,
		traceability.EdgeMeasures, traceability.EdgeMitigates,
		traceability.EdgeDrivenBy, traceability.EdgeJustifiedBy,
		traceability.EdgeImportedFrom,
	} {
		if count, ok := stats.EdgesByType[edgeType]; ok {
			fmt.Printf("  %-22s %d\n", edgeType, count)
		}
	}
	return nil
}

func runPath(resolver *orchestration.Resolver, args []string, all bool) error {
	name := "path"
	if all {
		name = "paths"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	businessFile := fs.String("business", "", "Path to the root business document")
	from := fs.String("from", "", "Start node ID")
	to := fs.String("to", "", "End node ID")
	fs.Parse(args)

	if *from == "" || *to == "" {
		return fmt.Errorf("-from and -to flags are required")
	}

	graph, err := resolveAndBuild(resolver, *businessFile)
	if err != nil {
		return err
	}

	if all {
		paths := traceability.FindPaths(graph, *from, *to)
		if len(paths) == 0 {
			fmt.Printf("No directed path from %s to %s\n", *from, *to)
			return nil
		}
		for _, path := range paths {
			printPath(path)
		}
		return nil
	}

	path := traceability.FindPath(graph, *from, *to)
	if path == nil {
		fmt.Printf("No connection between %s and %s\n", *from, *to)
		return nil
	}
	printPath(path)
	return nil
}

func printPath(path []string) {
	for i, id := range path {
		if i > 0 {
			fmt.Print(" -> ")
		}
		fmt.Print(id)
	}
	fmt.Println()
}

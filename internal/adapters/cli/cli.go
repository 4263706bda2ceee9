package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"

	"conversion-engine/internal/app"
	"conversion-engine/internal/core"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "convert", "conv", "c":
		runConvert(ctx, svc, args[1:])

	case "replay", "r":
		if len(args) < 2 {
			log.Fatal("Usage: app replay <conversion-id>")
		}
		result, err := svc.Replay(ctx, args[1])
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		printJSON(result)
		if !result.Match {
			fmt.Fprintln(os.Stderr, "WARNING: recomputed accounting quantity differs from the stored one: master data has drifted since this conversion was recorded")
			os.Exit(1)
		}

	case "packaging", "pkg":
		types, err := svc.ListPackagingTypes(ctx)
		if err != nil {
			log.Fatalf("Failed to list packaging types: %v", err)
		}
		fmt.Printf("%-12s %-24s %14s %14s\n", "ID", "NAME", "CAPACITY (L)", "NET WT (KG)")
		for _, p := range types {
			fmt.Printf("%-12s %-24s %14s %14s\n", p.PackagingTypeID, p.Name, p.CapacityLiters, p.NetWeightKgDefault)
		}

	case "schema":
		// JSON Schema of the persisted audit record, for integrators that
		// store or render conversion results downstream.
		reflector := jsonschema.Reflector{DoNotReference: true}
		printJSON(reflector.Reflect(app.ConvertResult{}))

	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q.\nCommands: convert, replay, packaging, schema\n", args[0])
		os.Exit(2)
	}
}

func runConvert(ctx context.Context, svc app.ApplicationService, args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	qtyStr := fs.String("qty", "", "commercial quantity (decimal, required)")
	unit := fs.String("unit", "", "commercial unit, e.g. DRUM, KG, LTR (required)")
	product := fs.String("product", "", "product code (required unless converting pure weight)")
	packaging := fs.String("packaging", "", "packaging type id (required for package units)")
	txContext := fs.String("context", string(core.ContextProcurement), "transaction context: PROCUREMENT, STOCK_ADJUSTMENT, COSTING, DISPATCH, SALES")
	densityStr := fs.String("density", "", "density override in kg/L (optional)")
	fs.Parse(args)

	if *qtyStr == "" || *unit == "" {
		fs.Usage()
		os.Exit(2)
	}
	qty, err := decimal.NewFromString(*qtyStr)
	if err != nil {
		log.Fatalf("Invalid -qty %q: %v", *qtyStr, err)
	}

	req := app.ConvertRequest{
		CommercialQty:   qty,
		CommercialUnit:  *unit,
		ProductCode:     *product,
		PackagingTypeID: *packaging,
		Context:         core.TransactionContext(strings.ToUpper(*txContext)),
	}
	if *densityStr != "" {
		density, err := decimal.NewFromString(*densityStr)
		if err != nil {
			log.Fatalf("Invalid -density %q: %v", *densityStr, err)
		}
		req.DensityOverride = &density
	}

	result, err := svc.Convert(ctx, req)
	if err != nil {
		// Engine errors are written to be self-explanatory remediation
		// instructions; surface them directly.
		var engineErr core.EngineError
		if errors.As(err, &engineErr) {
			log.Fatalf("Conversion blocked [%s]: %v", engineErr.Code(), engineErr)
		}
		log.Fatalf("Conversion failed: %v", err)
	}
	printJSON(result)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}

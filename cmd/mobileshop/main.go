package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sangkips/mobileshop-erp/internal/app"
	"github.com/sangkips/mobileshop-erp/internal/application/service"
	"github.com/sangkips/mobileshop-erp/internal/config"
	"github.com/sangkips/mobileshop-erp/pkg/apperror"
)

const usage = `usage: mobileshop <command> [flags]

commands:
  dashboard                      print dashboard figures as JSON
  receipt      -sale ID [-print] print (or share) a sale receipt
  khata-report -customer ID      print a customer's khata statement
  export-sales [-q NAME]         write sales history to an .xlsx file
  export-khata -customer ID      write a customer's khata to an .xlsx file
  printer                        show printer status
  reset        -yes              factory reset: wipe all data and settings
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Load configuration
	cfg := config.Load()

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("Warning: shutdown: %v", err)
		}
	}()

	if err := run(context.Background(), a, os.Args[1], os.Args[2:]); err != nil {
		appErr := apperror.GetAppError(err)
		if appErr.Kind == apperror.KindInternal {
			log.Printf("Error: %v", err)
		}
		fmt.Fprintln(os.Stderr, appErr.Error())
		a.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	saleID := fs.Int64("sale", 0, "sale id")
	customerID := fs.Int64("customer", 0, "customer id")
	query := fs.String("q", "", "product name filter")
	doPrint := fs.Bool("print", false, "send to the thermal printer")
	yes := fs.Bool("yes", false, "confirm")
	if err := fs.Parse(args); err != nil {
		return apperror.NewBadRequestError(err.Error())
	}

	switch cmd {
	case "dashboard":
		stats, err := a.Dashboard.GetDashboardStats(ctx)
		if err != nil {
			return err
		}
		return printJSON(stats)

	case "receipt":
		if *doPrint {
			receipt, err := a.Printer.PrintSaleReceipt(ctx, *saleID)
			if err != nil {
				return err
			}
			fmt.Printf("Printed receipt %s\n", receipt.ReceiptNo)
			return nil
		}
		text, err := a.Share.SaleReceipt(ctx, *saleID)
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil

	case "khata-report":
		text, err := a.Share.KhataReport(ctx, *customerID, nil, nil)
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil

	case "export-sales":
		path, err := a.Export.SalesWorkbook(ctx, &service.SaleFilter{Query: *query})
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	case "export-khata":
		path, err := a.Export.KhataWorkbook(ctx, *customerID)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	case "printer":
		return printJSON(a.Printer.GetStatus())

	case "reset":
		if !*yes {
			return apperror.NewBadRequestError("Refusing to reset without -yes")
		}
		if err := a.Settings.FactoryReset(ctx); err != nil {
			return err
		}
		// Let subscribers settle before the feed shuts down.
		syncCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = a.Feed.Sync(syncCtx)
		fmt.Println("All data wiped")
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return apperror.NewBadRequestError("unknown command " + cmd)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

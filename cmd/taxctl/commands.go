package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"taxoffice/internal/database"
	"taxoffice/internal/service"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func recomputeCmd() *cobra.Command {
	var (
		taxpayers []string
		req       service.RecomputeRequest
		quiet     bool
	)
	cmd := &cobra.Command{
		Use:   "recompute-compliance",
		Short: "Rescore compliance for one period",
		Long: `Scores every active taxpayer (or the ones given with --taxpayer) for a period.
Running it twice with the same inputs stores nothing new.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(a)

			req.TaxpayerIDs = taxpayers
			if !quiet && !outputJSON {
				bar := progressbar.NewOptions(-1,
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription("Scoring taxpayers"),
					progressbar.OptionClearOnFinish(),
				)
				req.Progress = func(total int) {
					if bar.GetMax() != total {
						bar.ChangeMax(total)
					}
					_ = bar.Add(1)
				}
				defer func() { _ = bar.Finish() }()
			}

			res, err := a.Compliance.RecomputeAll(cmd.Context(), req, service.SystemActor)
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(res)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TAXPAYER\tOVERALL\tNEW\tERROR")
			for _, item := range res.Results {
				if item.Snapshot != nil {
					fmt.Fprintf(w, "%s\t%s\t%t\t\n", item.TaxpayerID, item.Snapshot.Overall, item.Snapshot.Created)
				} else {
					fmt.Fprintf(w, "%s\t-\t-\t%s\n", item.TaxpayerID, item.Error)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\n%d scored, %d failed, %d new snapshots\n", res.Succeeded, res.Failed, res.Created)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&taxpayers, "taxpayer", nil, "taxpayer ID (repeatable); all active taxpayers when omitted")
	cmd.Flags().StringVar(&req.Label, "label", "", "period label")
	cmd.Flags().StringVar(&req.PeriodStart, "period-start", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.PeriodEnd, "period-end", "", "period end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.AsOf, "as-of", "", "scoring date (YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	_ = cmd.MarkFlagRequired("period-start")
	_ = cmd.MarkFlagRequired("period-end")
	_ = cmd.MarkFlagRequired("as-of")
	return cmd
}

func resolveRateCmd() *cobra.Command {
	var taxType, jurisdiction, asOf string
	cmd := &cobra.Command{
		Use:   "resolve-rate",
		Short: "Show the rate book in force on a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(a)

			book, err := a.Tax.ResolveRateBook(cmd.Context(), taxType, jurisdiction, asOf)
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(book)
			}

			to := "open"
			if book.EffectiveTo != nil {
				to = *book.EffectiveTo
			}
			fmt.Printf("%s/%s  %s .. %s  (%s)\n\n", book.TaxType, book.Jurisdiction, book.EffectiveFrom, to, book.ID)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tCATEGORY\tTHRESHOLD\tRATE\tFIXED FEE\tUNIT")
			for _, e := range book.Entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", e.Code, e.Category, e.Threshold, e.Rate, e.FixedFee, e.UnitBasis)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&taxType, "tax-type", "", "INCOME, CORPORATE, GST, WHT or EXCISE")
	cmd.Flags().StringVar(&jurisdiction, "jurisdiction", "", "jurisdiction code")
	cmd.Flags().StringVar(&asOf, "as-of", "", "date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("tax-type")
	_ = cmd.MarkFlagRequired("as-of")
	return cmd
}

func dueDateCmd() *cobra.Command {
	var req service.DueDateRequest
	cmd := &cobra.Command{
		Use:   "due-date",
		Short: "Preview the statutory due date of a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(a)

			res, err := a.Calendar.PreviewDueDate(cmd.Context(), req)
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(res)
			}
			fmt.Printf("%s %s\n  base:      %s\n  statutory: %s (%s)\n", res.TaxType, res.PeriodKey, res.Base, res.Statutory, res.RollConvention)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.TaxType, "tax-type", "", "INCOME, CORPORATE, GST, WHT or EXCISE")
	cmd.Flags().StringVar(&req.Jurisdiction, "jurisdiction", "", "jurisdiction code")
	cmd.Flags().StringVar(&req.TaxpayerID, "taxpayer", "", "taxpayer ID; its jurisdiction is used")
	cmd.Flags().StringVar(&req.Label, "label", "", "period label")
	cmd.Flags().StringVar(&req.PeriodStart, "period-start", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.PeriodEnd, "period-end", "", "period end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("tax-type")
	_ = cmd.MarkFlagRequired("period-start")
	_ = cmd.MarkFlagRequired("period-end")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(a)
			if err := database.Migrate(a.DB); err != nil {
				return err
			}
			fmt.Println("schema up to date")
			return nil
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/gst"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/report"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/services"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/suggest"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/tui"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and remember the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "partner", Usage: "partner (business) name"},
			&cli.StringFlag{Name: "username"},
			&cli.StringFlag{Name: "password", EnvVars: []string{"WIZARD_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			e := envOf(c)
			f := forms.Login{
				PartnerName: forms.Value(c.String("partner")),
				Username:    forms.Value(c.String("username")),
				Password:    forms.Value(c.String("password")),
			}
			if v := f.Validate(); !v.Empty() {
				return explain(&services.ValidationError{Violations: v})
			}
			s, err := e.api.Login(c.Context, f.PartnerName.String(), f.Username.String(), string(f.Password))
			if err != nil {
				return explain(err)
			}
			if err := e.sessions.Set(c.Context, s); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			fmt.Fprintf(c.App.Writer, "logged in as %s (%s)\n", s.Username, s.PartnerName)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the saved session",
		Action: func(c *cli.Context) error {
			if err := envOf(c).sessions.Teardown(c.Context); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "logged out")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the saved session",
		Action: func(c *cli.Context) error {
			s := envOf(c).sessions.Current()
			if !s.Authenticated() {
				fmt.Fprintln(c.App.Writer, "not logged in")
				return nil
			}
			fmt.Fprintf(c.App.Writer, "%s @ %s\n", s.Username, s.PartnerName)
			return nil
		},
	}
}

func totalsCommand() *cli.Command {
	amount := &cli.StringFlag{Name: "amount", Usage: "amount before tax", Required: true}
	return &cli.Command{
		Name:  "totals",
		Usage: "compute GST totals offline",
		Subcommands: []*cli.Command{
			{
				Name:  "split",
				Usage: "CGST and SGST halves, as on purchase entries",
				Flags: []cli.Flag{
					amount,
					&cli.StringFlag{Name: "rate", Value: string(gst.Rate5), Usage: "2.5, 5, 18 or other"},
					&cli.StringFlag{Name: "custom", Usage: "percentage used with --rate other"},
				},
				Action: func(c *cli.Context) error {
					rate := gst.ParseTaxRate(c.String("rate"), c.String("custom"))
					b := gst.ComputeSplitGst(gst.ParsePrice(c.String("amount")), rate)
					w := c.App.Writer
					fmt.Fprintf(w, "Rate:        %s\n", rate)
					fmt.Fprintf(w, "Before tax:  %s\n", gst.FormatMoney(b.SubtotalBeforeTax))
					fmt.Fprintf(w, "CGST:        %s\n", gst.FormatMoney(b.CGST))
					fmt.Fprintf(w, "SGST:        %s\n", gst.FormatMoney(b.SGST))
					fmt.Fprintf(w, "IGST:        %s\n", gst.FormatMoney(b.IGST))
					fmt.Fprintf(w, "Grand total: %s\n", gst.FormatMoney(b.GrandTotal))
					return nil
				},
			},
			{
				Name:  "flat",
				Usage: "the flat 5% used on sales invoices",
				Flags: []cli.Flag{amount},
				Action: func(c *cli.Context) error {
					b := gst.ComputeFlatGst(gst.ParsePrice(c.String("amount")))
					w := c.App.Writer
					fmt.Fprintf(w, "Subtotal:    %s\n", gst.FormatMoney(b.Subtotal))
					fmt.Fprintf(w, "GST (5%%):    %s\n", gst.FormatMoney(b.GST))
					fmt.Fprintf(w, "Grand total: %s\n", gst.FormatMoney(b.GrandTotal))
					return nil
				},
			},
		},
	}
}

func lookupCommand() *cli.Command {
	type target struct {
		name, title string
		fetch       func(e *env, s session.Session) suggest.FetchFunc[string]
	}
	targets := []target{
		{"customer", "Customer", func(e *env, s session.Session) suggest.FetchFunc[string] { return e.api.For(s).SearchCustomers }},
		{"product", "Product", func(e *env, s session.Session) suggest.FetchFunc[string] { return e.api.For(s).SearchProducts }},
		{"invoice", "Invoice number", func(e *env, s session.Session) suggest.FetchFunc[string] { return e.api.For(s).SearchInvoices }},
	}
	cmd := &cli.Command{Name: "lookup", Usage: "search interactively and print the choice"}
	for _, t := range targets {
		t := t
		cmd.Subcommands = append(cmd.Subcommands, &cli.Command{
			Name: t.name,
			Action: authed(func(c *cli.Context, e *env, s session.Session) error {
				v, ok, err := tui.RunLookup(c.Context, t.title, e.cfg.Suggest, t.fetch(e, s))
				if err != nil {
					return err
				}
				if !ok {
					return cli.Exit("cancelled", 1)
				}
				fmt.Fprintln(c.App.Writer, v)
				return nil
			}),
		})
	}
	return cmd
}

func reportCommand() *cli.Command {
	cmd := &cli.Command{Name: "report", Usage: "export a sales or purchase report as PDF"}
	for _, kind := range []models.ReportKind{models.ReportSales, models.ReportPurchase} {
		kind := kind
		cmd.Subcommands = append(cmd.Subcommands, &cli.Command{
			Name: string(kind),
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "from", Usage: "start date, yyyy-mm-dd"},
				&cli.StringFlag{Name: "to", Usage: "end date, yyyy-mm-dd"},
				&cli.StringFlag{Name: "name", Usage: "customer or supplier name"},
				&cli.StringFlag{Name: "out", Usage: "output file", Value: report.Filename(kind)},
			},
			Action: authed(func(c *cli.Context, e *env, s session.Session) error {
				svc := services.NewReportService(e.api)
				l, err := svc.List(c.Context, s, forms.Report{
					Kind:         forms.Value(kind),
					StartDate:    forms.Value(c.String("from")),
					EndDate:      forms.Value(c.String("to")),
					CustomerName: forms.Value(c.String("name")),
				})
				if err != nil {
					return err
				}
				out := c.String("out")
				fh, err := os.Create(out)
				if err != nil {
					return err
				}
				if err := svc.WritePDF(fh, s, l); err != nil {
					fh.Close()
					return fmt.Errorf("write report: %w", err)
				}
				if err := fh.Close(); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "%d rows written to %s\n", l.Count(), out)
				return nil
			}),
		})
	}
	return cmd
}

func payCommand() *cli.Command {
	return &cli.Command{
		Name:  "pay",
		Usage: "record a payment",
		Subcommands: []*cli.Command{
			{
				Name:  "sales",
				Usage: "money received from a customer",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "customer"},
					&cli.StringFlag{Name: "date", Value: models.Today()},
					&cli.StringFlag{Name: "bank", Usage: "bank or payment mode"},
					&cli.StringFlag{Name: "amount"},
				},
				Action: authed(func(c *cli.Context, e *env, s session.Session) error {
					recent, err := services.NewPaymentService(e.api).RecordSales(c.Context, s, forms.SalesPayment{
						CustomerName: forms.Value(c.String("customer")),
						Date:         forms.Value(c.String("date")),
						BankName:     forms.Value(c.String("bank")),
						Amount:       forms.Value(c.String("amount")),
					})
					if err != nil {
						return err
					}
					printRecent(c, recent)
					return nil
				}),
			},
			{
				Name:  "purchase",
				Usage: "money paid against a purchase order",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "supplier"},
					&cli.StringFlag{Name: "po", Usage: "purchase order number"},
					&cli.StringFlag{Name: "date", Value: models.Today()},
					&cli.StringFlag{Name: "mode", Usage: "payment mode"},
					&cli.StringFlag{Name: "amount"},
				},
				Action: authed(func(c *cli.Context, e *env, s session.Session) error {
					recent, err := services.NewPaymentService(e.api).RecordPurchase(c.Context, s, forms.PurchasePayment{
						SupplierName:  forms.Value(c.String("supplier")),
						PONumber:      forms.Value(c.String("po")),
						PaymentDate:   forms.Value(c.String("date")),
						PaymentMode:   forms.Value(c.String("mode")),
						PaymentAmount: forms.Value(c.String("amount")),
					})
					if err != nil {
						return err
					}
					printRecent(c, recent)
					return nil
				}),
			},
		},
	}
}

func printRecent(c *cli.Context, rows []models.Transaction) {
	fmt.Fprintln(c.App.Writer, "payment recorded")
	for _, t := range rows {
		fmt.Fprintf(c.App.Writer, "  %-12s %-24s %-10s %s\n", t.Date, t.Name, t.Mode, gst.FormatMoney(t.Amount))
	}
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/madsdyd/grv-scripts/internal/config"
	"github.com/madsdyd/grv-scripts/internal/dawa"
)

func adresserCmd() *cobra.Command {
	var (
		long    bool
		detail  bool
		outfile string
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "adresser",
		Short: "Hent kommunens adresser fra Danmarks Adresseregister",
		Long: "Henter alle adresser i kommunen fra DAWA. Som standard skrives " +
			"vejnavne med antal adresser; --long giver de rå JSON-poster og " +
			"--detail fulde adressebetegnelser.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if perPage > 0 {
				cfg.DAWA.PerPage = perPage
			}

			client := dawa.NewClient(cfg.DAWA.BaseURL, cfg.DAWA.PerPage,
				cfg.DAWA.GetDelay(), logger)

			kommune, err := client.LookupKommune(cfg.Kommune.Navn)
			if err != nil {
				return err
			}
			logger.Info("Fetching addresses",
				zap.String("kommune", kommune.Navn),
				zap.String("kode", kommune.Kode))

			var w io.Writer = os.Stdout
			if outfile != "" {
				f, err := os.Create(outfile)
				if err != nil {
					return fmt.Errorf("failed to create output file %s: %w", outfile, err)
				}
				defer f.Close()
				w = f
			}

			switch {
			case long:
				err = client.WriteNDJSON(w, kommune.Kode)
			case detail:
				err = client.WriteBetegnelser(w, kommune.Kode)
			default:
				err = client.WriteStreetCounts(w, kommune.Kode)
			}
			if err != nil {
				if outfile != "" {
					os.Remove(outfile)
				}
				return err
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&long, "long", false, "Write raw address records as NDJSON")
	cmd.Flags().BoolVar(&detail, "detail", false, "Write full address designations, one per line")
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "", "Write to this file instead of stdout")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Addresses per registry request (default from config)")
	cmd.MarkFlagsMutuallyExclusive("long", "detail")

	return cmd
}

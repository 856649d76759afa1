package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/madsdyd/grv-scripts/internal/config"
	"github.com/madsdyd/grv-scripts/internal/geocode"
	"github.com/madsdyd/grv-scripts/internal/kort"
	"github.com/madsdyd/grv-scripts/internal/members"
)

func kortCmd() *cobra.Command {
	var pngPath string

	cmd := &cobra.Command{
		Use:   "kort <medlemmer.xlsx> [kort.html]",
		Short: "Tegn et kort over hvor medlemmerne bor",
		Long: "Geokoder medlemmernes adresser via Nominatim (med lokal cache) og " +
			"skriver et Leaflet-kort med kommunegrænser. Kortet indeholder " +
			"persondata og må ikke deles.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			outPath := "medlemskort.html"
			if len(args) == 2 {
				outPath = args[1]
			}

			list, err := members.Load(args[0], logger)
			if err != nil {
				return err
			}

			cache := geocode.NewCache(cfg.Geocode.CacheFile, logger)
			if err := cache.Load(); err != nil {
				return err
			}
			client := geocode.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent,
				cfg.Geocode.GetDelay(), cache, logger)

			located := make(map[string]geocode.Coord)
			pinMembers := make(map[string][]kort.PinMember)
			var failed []string
			skipped := 0

			for _, m := range list {
				if !m.HasAddress() {
					skipped++
					continue
				}
				address := m.CleanAddress()
				pinMembers[address] = append(pinMembers[address], kort.PinMember{
					Name:     m.Name,
					Address:  address,
					Birthday: m.DisplayBirthday(),
				})
				if _, done := located[address]; done {
					continue
				}
				if hasFailed(failed, address) {
					continue
				}

				coord, found, err := client.Lookup(address)
				if err != nil {
					return fmt.Errorf("geocoding stopped at %q: %w", address, err)
				}
				if !found {
					failed = append(failed, address)
					continue
				}
				located[address] = coord
			}

			if err := cache.Save(); err != nil {
				logger.Warn("Failed to save geocode cache", zap.Error(err))
			}

			boundaries, err := kort.FetchGeoJSON(cfg.Kort.GeoJSONURL, cfg.Kort.GeoJSONCache, logger)
			if err != nil {
				return err
			}

			data := kort.MapData{
				KommuneNavn: cfg.Kommune.Navn,
				CenterLat:   cfg.Kort.CenterLat,
				CenterLon:   cfg.Kort.CenterLon,
				Zoom:        cfg.Kort.Zoom,
				Pins:        kort.BuildPins(located, pinMembers),
				Failed:      failed,
			}
			if err := kort.RenderHTML(outPath, data, boundaries, logger); err != nil {
				return err
			}

			fmt.Printf("Skrev kort med %d adresser til %s\n", len(located), outPath)
			if skipped > 0 {
				fmt.Printf("Sprang %d medlemmer uden adresse over\n", skipped)
			}
			if len(failed) > 0 {
				fmt.Printf("Kunne ikke finde %d adresser:\n  %s\n",
					len(failed), strings.Join(failed, "\n  "))
			}

			if pngPath != "" {
				if err := kort.Snapshot(cmd.Context(), outPath, pngPath, logger); err != nil {
					return err
				}
				fmt.Printf("Skrev skærmbillede til %s\n", pngPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&pngPath, "png", "", "Also capture a PNG screenshot of the map to this path")

	return cmd
}

func hasFailed(failed []string, address string) bool {
	for _, f := range failed {
		if f == address {
			return true
		}
	}
	return false
}

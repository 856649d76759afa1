package kort

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	snapshotWidth   = 1280
	snapshotHeight  = 960
	snapshotTimeout = 60 * time.Second
)

// Snapshot renders the map page in headless Chromium and writes a PNG.
// The page sets data-ready once Leaflet reports the map ready, so the
// screenshot waits for tiles and markers instead of racing them.
func Snapshot(parentCtx context.Context, htmlPath, pngPath string, logger *zap.Logger) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to resolve map path %s: %w", htmlPath, err)
	}
	url := "file://" + abs

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, snapshotTimeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(snapshotWidth, snapshotHeight),
		chromedp.Navigate(url),
		chromedp.WaitVisible(`[data-ready="true"]`, chromedp.ByQuery),
		// Tiles keep painting briefly after the ready signal.
		chromedp.Sleep(2 * time.Second),
		chromedp.FullScreenshot(&png, 100),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("failed to capture map screenshot: %w", err)
	}

	if err := os.WriteFile(pngPath, png, 0644); err != nil {
		return fmt.Errorf("failed to write screenshot %s: %w", pngPath, err)
	}

	logger.Info("Map screenshot written",
		zap.String("file", pngPath),
		zap.Int("bytes", len(png)))

	return nil
}

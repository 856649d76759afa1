package kort

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// FetchGeoJSON returns the Danish municipality boundaries. The file is
// a few megabytes and changes about never, so it is fetched once and
// cached next to the geocode cache.
func FetchGeoJSON(url, cachePath string, logger *zap.Logger) (json.RawMessage, error) {
	if data, err := os.ReadFile(cachePath); err == nil {
		if json.Valid(data) {
			logger.Debug("Municipality boundaries loaded from cache",
				zap.String("file", cachePath))
			return data, nil
		}
		logger.Warn("Municipality cache is not valid JSON, refetching",
			zap.String("file", cachePath))
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch municipality boundaries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("municipality boundary fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read municipality boundaries: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("municipality boundary response is not valid JSON")
	}

	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		logger.Warn("Failed to cache municipality boundaries",
			zap.String("file", cachePath),
			zap.Error(err))
	} else {
		logger.Info("Municipality boundaries cached",
			zap.String("file", cachePath),
			zap.Int("bytes", len(data)))
	}

	return data, nil
}

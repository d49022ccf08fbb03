// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package download fetches remote files with a local cache fallback.
package download

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/derat/covidtracker/filewriter"
)

// DefaultTimeout bounds each download attempt.
const DefaultTimeout = 30 * time.Second

// File downloads url to cachePath and returns cachePath. If the download
// fails for any reason, it falls back to an existing file at cachePath.
// If offline is true the network is never touched. When neither the
// download nor the cache can supply the file, the returned error names
// the URL so the user can fetch it manually.
func File(url, cachePath string, timeout time.Duration, offline bool, log *zap.Logger) (string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if !offline {
		if err := fetch(url, cachePath, timeout); err != nil {
			log.Warn("Download failed; trying local file",
				zap.String("url", url), zap.Error(err))
		} else {
			log.Info("Downloaded file",
				zap.String("url", url), zap.String("path", cachePath))
			return cachePath, nil
		}
	}

	if _, err := os.Stat(cachePath); err == nil {
		log.Info("Using local file", zap.String("path", cachePath))
		return cachePath, nil
	}
	return "", fmt.Errorf("local file %v not found; download manually from %v", cachePath, url)
}

// fetch performs a single download attempt and atomically writes the body.
func fetch(url, dst string, timeout time.Duration) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %v", resp.Status)
	}

	fw, err := filewriter.New(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, resp.Body); err != nil {
		// A truncated body must not replace an existing good cache.
		fw.Abort()
		return err
	}
	return fw.Close()
}

package app

import (
	"context"
	"log"
	"time"

	"github.com/five82/kuteview/internal/kutelog"
)

const versionRefreshInterval = 30 * time.Second

// watchVersion looks up the server identification and reports it through set
// whenever it changes. Failures retry after retry; once known, the version is
// re-checked every versionRefreshInterval so a restarted server shows up. It
// blocks until ctx is cancelled.
func watchVersion(ctx context.Context, fetcher kutelog.VersionFetcher, retry time.Duration, set func(string)) {
	if retry <= 0 {
		retry = time.Second
	}

	var current string
	failing := false
	for {
		wait := versionRefreshInterval
		version, err := fetcher.FetchVersion(ctx)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			if !failing {
				log.Printf("version lookup failed: %v", err)
			}
			failing = true
			wait = retry
		default:
			failing = false
			if v := version.String(); v != "" && v != current {
				current = v
				set(v)
			}
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

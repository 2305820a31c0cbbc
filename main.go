// main is the entry point of the busfactor CLI.
package main

import (
	"github.com/estersassis/busfactor/cmd"
	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	err := cmd.Execute()

	// LogFatal exits, so release resources first
	iocache.CloseStores()
	if cleanupErr := cmd.Cleanup(); cleanupErr != nil {
		contract.LogWarn("Cleanup failed", cleanupErr)
	}
	if err != nil {
		contract.LogFatal("busfactor failed", err)
	}
}

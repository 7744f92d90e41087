// Command erovistactl answers pole configuration questions against a reference
// dataset without running the server.
//
// Usage:
//
//	erovistactl capacity -d data/data.csv --mount-type "Top Mount" \
//	  --fixture-configuration "Single Top Mount" --pole-size 6x6 \
//	  --pole-height 20 --wind-speed 100
//	erovistactl sizes --mount-type "Top Mount" --fixture-configuration "Single Top Mount" \
//	  --pole-height 20 --wind-speed 100 --min-epa 10 -o json
//	erovistactl values fixture_configuration --mount-type "Top Mount"
//	erovistactl validate -d https://example.com/data.csv
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

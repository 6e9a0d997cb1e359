package main

import (
	// Zones resolve the same on hosts without a timezone database.
	_ "time/tzdata"

	"github.com/oshokin/shabbat-check/cmd/shabbat-check/cmd"
)

func main() {
	cmd.Execute()
}

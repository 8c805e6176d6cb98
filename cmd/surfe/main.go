// Command surfe prints surf recommendations, spot conditions and tides, and
// manages saved favorites.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(newApp(os.Stdout)).Execute(); err != nil {
		os.Exit(1)
	}
}

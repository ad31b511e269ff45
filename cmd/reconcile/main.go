// Command reconcile consolidates ballot exports collected from several
// devices so an administrator can count them and spot duplicate voters.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

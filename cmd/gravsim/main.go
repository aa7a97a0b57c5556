// Command gravsim is the thin CLI collaborator §5/§6 describe: it owns
// cancellation and retry policy around the integration engine and
// nothing else.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

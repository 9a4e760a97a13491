package main

import (
	"fmt"
	"os"

	"textpanel/log"
	"textpanel/panel"
	"textpanel/ui"
)

var version = "0.3.0"

func main() {
	err := newRootCmd().Execute()
	log.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Status(panel.StatusError, err.Error()))
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gperfar/chatbot-admin/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		if strings.Contains(err.Error(), "unknown command") {
			fmt.Fprintln(os.Stderr, "\nRun 'chatadmin --help' for usage.")
		}
		os.Exit(1)
	}
}

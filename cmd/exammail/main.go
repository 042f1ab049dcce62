// Command exammail mails each lecturer their exam schedule from a spreadsheet.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrymomot/exammail/pkg/logger"
)

func main() {
	err := newRootCmd().Execute()
	logger.Flush(2 * time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

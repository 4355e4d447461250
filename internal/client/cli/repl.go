package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) prompt() string {
	if a.isConnected() {
		return "fk (connected)> "
	}
	return "fk> "
}

// repl reads commands until EOF or exit. Command errors are printed and the
// loop continues.
func (a *App) repl(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to filekeeper CLI (type 'help' for commands)")

	for {
		fmt.Fprint(a.out, a.prompt())

		line, err := a.reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) > 0 {
			if parts[0] == "exit" || parts[0] == "quit" {
				fmt.Fprintln(a.out, "Bye!")
				return
			}
			if cmdErr := a.execute(ctx, parts); cmdErr != nil {
				a.failure(cmdErr)
			}
		}
		if err != nil {
			return
		}
	}
}

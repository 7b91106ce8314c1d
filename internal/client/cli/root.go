package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to CreatorLink (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "clink %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		var err error
		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: whoami, role, profile, google, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: login, signup, google, callback, exit")
			}
		case "login":
			err = a.Login(ctx)
		case "signup":
			err = a.Signup(ctx)
		case "google":
			err = a.Google(ctx)
		case "callback":
			// Direct entry point for a pasted redirect URL.
			if len(parts) < 2 {
				fmt.Fprintln(a.out, "Usage: callback <redirect-url>")
				continue
			}
			if cberr := a.controller.ConsumeCallback(ctx, parts[1], a.currentPath); cberr != nil {
				fmt.Fprintf(a.out, "Callback failed: %v\n", cberr)
			}
		case "whoami":
			a.Whoami(ctx)
		case "role":
			err = a.ChooseRole(ctx)
		case "profile":
			err = a.CompleteProfile(ctx)
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintf(a.out, "Unknown command %q\n", parts[0])
		}

		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context, paths []string) error
	List(ctx context.Context) error
	Remove(ctx context.Context, id string) error
	Upload(ctx context.Context) error
	Plans(ctx context.Context) error
	Unlock(ctx context.Context, stageKey string) error
	Status(ctx context.Context) error
	Watch(ctx context.Context, applicationID string) error
}

// runREPL starts a simple read–eval–print loop for the GrantPilot CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             — show available commands
//	  - login            — sign in with an API token
//	  - exit | quit      — leave the program
//
//	Logged in:
//	  - help             — show available commands
//	  - add <path...>    — stage files for upload
//	  - list             — list staged files and their statuses
//	  - rm <id>          — remove a staged file
//	  - upload           — submit all pending files as one batch
//	  - plans            — show purchasable stages
//	  - unlock <stage>   — run the demo checkout for a stage
//	  - status           — show account, connectivity and unlocked stages
//	  - watch <app-id>   — follow stage-4 generation progress
//	  - logout           — sign out and clear cached state
//	  - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gp> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add <path...>, (l)ist, rm <id>, upload, plans, unlock <stage>, status, watch <app-id>, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "add":
			if len(args) == 0 {
				printlnFn("Usage: add <path> [path...]")
				continue
			}
			_ = a.Add(ctx, args)

		case "l", "list":
			_ = a.List(ctx)

		case "rm":
			if len(args) == 0 {
				printlnFn("Usage: rm <id>")
				continue
			}
			_ = a.Remove(ctx, args[0])

		case "upload":
			_ = a.Upload(ctx)

		case "plans":
			_ = a.Plans(ctx)

		case "unlock":
			if len(args) == 0 {
				printlnFn("Usage: unlock <stage>")
				continue
			}
			_ = a.Unlock(ctx, args[0])

		case "status":
			_ = a.Status(ctx)

		case "watch":
			if len(args) == 0 {
				printlnFn("Usage: watch <application-id>")
				continue
			}
			_ = a.Watch(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

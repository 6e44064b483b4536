package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for prompt and REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Group(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Tasks(ctx context.Context, args []string) error
	Users(ctx context.Context, args []string) error
	Images(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Undo(ctx context.Context, args []string) error
	Refetch(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit" or "quit". Handler errors are reported by the handlers themselves.
//
//	help                             list commands
//	login                            sign in with a session token
//	group <id>|none                  switch household (none clears it)
//	show                             household summary
//	tasks | users | images           list a collection
//	done <task> | undo <task>        mark a task completed or not
//	refetch                          reload from the database
//	upload <path> <category> <title> add a photo to the gallery
//	status                           loading, sync and cache state
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rb %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: show, tasks, users, images, done, undo, refetch, upload, group, status, login, exit")
			} else {
				printlnFn("Available commands: login, group, show, status, exit")
			}
		case "login":
			_ = a.Login(ctx, args)
		case "group":
			_ = a.Group(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "tasks", "t":
			_ = a.Tasks(ctx, args)
		case "users", "u":
			_ = a.Users(ctx, args)
		case "images", "i":
			_ = a.Images(ctx, args)
		case "done":
			_ = a.Done(ctx, args)
		case "undo":
			_ = a.Undo(ctx, args)
		case "refetch", "r":
			_ = a.Refetch(ctx, args)
		case "upload":
			_ = a.Upload(ctx, args)
		case "status":
			_ = a.Status(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

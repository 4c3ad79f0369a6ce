package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Reload(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// It returns on end of input or on "exit"/"quit". Handler errors are not
// fatal; handlers report them to the user themselves.
//
//	Not logged in:
//	  help, register, login, exit
//
//	Logged in:
//	  (l)ist [all|pending|completed] [text]   show tasks
//	  add [title]                             add a task
//	  (t)oggle <n>                            flip pending/completed
//	  rename <n> <title>                      change the title
//	  (d)elete <n>                            remove a task
//	  stats, reload, profile, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tasks %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) > 0 {
			if !dispatch(ctx, a, parts[0], parts[1:]) {
				return
			}
		}

		if err != nil {
			return
		}
	}
}

// dispatch runs one command and reports whether the loop should continue.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn("Available commands: (l)ist, add, (t)oggle, rename, (d)elete, stats, reload, profile, logout, exit")
		} else {
			printlnFn("Available commands: register, login, exit")
		}

	case "register":
		_ = a.Register(ctx)

	case "login":
		_ = a.Login(ctx)

	case "logout":
		_ = a.Logout(ctx)

	case "profile":
		_ = a.Profile(ctx)

	case "l", "list":
		_ = a.List(ctx, args)

	case "stats":
		_ = a.Stats(ctx)

	case "add":
		_ = a.Add(ctx, args)

	case "t", "toggle":
		_ = a.Toggle(ctx, args)

	case "rename":
		if len(args) < 2 {
			printlnFn("Usage: rename <n> <title>")
			return true
		}
		_ = a.Rename(ctx, args)

	case "d", "delete":
		_ = a.Delete(ctx, args)

	case "reload":
		_ = a.Reload(ctx)

	case "exit", "quit":
		printlnFn("Bye!")
		return false

	default:
		printlnFn("Unknown command:", cmd)
	}
	return true
}

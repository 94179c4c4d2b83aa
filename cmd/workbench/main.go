// workbench is a terminal workspace panel for managing the document
// collections, imported chats and database tables of a remote backend.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"workbench/internal/client"
	"workbench/internal/domain"
	"workbench/internal/i18n"
	debuglog "workbench/internal/log"
	"workbench/internal/notify"
	"workbench/internal/panel"
	"workbench/internal/tui"
)

type options struct {
	URL   string `short:"u" long:"url" env:"WORKBENCH_API_URL" description:"Backend API base URL"`
	Debug []bool `short:"d" long:"debug" description:"Increase debug verbosity (repeatable)"`
	Lang  string `long:"lang" env:"WORKBENCH_LANG" description:"Language for notifications (en, es)"`
	List  string `long:"list" description:"Print one resource kind and exit (documents|chats|tables)"`
}

func main() {
	// Missing .env is fine; flags and real env still apply.
	_ = godotenv.Load()

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	debuglog.SetLevel(debuglog.LevelFromInt(len(opts.Debug)))

	if _, err := i18n.Init(opts.Lang); err != nil {
		fmt.Fprintf(os.Stderr, "workbench: %v\n", err)
		os.Exit(1)
	}

	c, err := client.New(opts.URL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "workbench: %v\n", err)
		os.Exit(1)
	}

	if opts.List != "" {
		if err := runList(c, opts.List); err != nil {
			fmt.Fprintf(os.Stderr, "workbench: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runTUI(c); err != nil {
		fmt.Fprintf(os.Stderr, "workbench: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(c *client.Client) error {
	notifications := make(chan notify.Notification, 16)
	p := panel.New(c, notify.Func(func(n notify.Notification) {
		notifications <- n
	}))

	program := tea.NewProgram(tui.New(p, notifications), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// runList loads one kind and prints it, for scripting and debugging
// without a TTY. Notifications go to stderr.
func runList(c *client.Client, kind string) error {
	tab, ok := panel.ParseTab(kind)
	if !ok {
		return fmt.Errorf(i18n.T("cli_error_invalid_kind"), kind)
	}

	p := panel.New(c, notify.Func(func(n notify.Notification) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", n.Level, n.Message)
	}))
	if err := p.Reload(context.Background(), tab); err != nil {
		return err
	}

	snap := p.Snapshot()
	switch tab {
	case panel.TabChats:
		for _, c := range snap.Chats.Items {
			fmt.Printf("%s\t%s\t[%s] %d message(s)\n", c.CollectionID, c.FileName, c.Platform, c.MessageCount)
		}
	case panel.TabTables:
		for _, t := range snap.Tables.Items {
			fmt.Printf("%s\t%d column(s)\n", t.Name, len(t.Columns))
			for _, col := range t.Columns {
				nullable := ""
				if !col.IsNullable() {
					nullable = " NOT NULL"
				}
				pk := ""
				if col.PrimaryKey {
					pk = " PK"
				}
				fmt.Printf("\t%s %s%s%s\n", col.Name, col.Type, nullable, pk)
			}
		}
	default:
		for _, d := range snap.Documents.Items {
			fmt.Printf("%s\t%s\t%d document(s)\n", d.CollectionID, domain.CollectionTitle(d), d.DocumentCount)
		}
	}
	return nil
}

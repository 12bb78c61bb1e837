// Command lists edits the stored whitelists and blacklists while the host is not running.
//
//	lists show
//	lists add|remove|toggle <list> <id>
//	lists clear whitelists|blacklists|<list>...
package main

import (
	"encoding/json"
	"fmt"
	flag "github.com/spf13/pflag"
	"io"
	"log"
	"notifwhitelist/internal/app/domain/lists"
	"notifwhitelist/internal/app/domain/preferences"
	"notifwhitelist/internal/app/infrastructure/config"
	"notifwhitelist/internal/app/infrastructure/storage"
	"notifwhitelist/pkg/logger"
	"os"
)

func main() {
	f := flag.NewFlagSet("lists", flag.ExitOnError)
	config.Flags(f)
	_ = f.Parse(os.Args[1:])

	path, _ := f.GetString("config")
	cfg, err := config.Load(path, f)
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	data, err := storage.New(cfg.Data)
	if err != nil {
		log.Fatal("Error opening data store: ", err)
	}
	defer data.Close()

	l := logger.New(logger.Options{})
	l.SetLogLevel(cfg.App.LogLevel)

	prefs := preferences.New(l, data)
	if _, err := prefs.Load(); err != nil {
		log.Fatal("Error loading settings: ", err)
	}

	if err := run(os.Stdout, prefs, lists.New(l, prefs), f.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(out io.Writer, prefs *preferences.Manager, m *lists.Mutator, args []string) error {
	if len(args) == 0 {
		return usage()
	}

	switch cmd := args[0]; cmd {
	case "show":
		rec := prefs.Get().Clone()
		rec.CustomNotificationSoundBytes = nil
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)

	case "add", "remove", "toggle":
		if len(args) != 3 {
			return usage()
		}
		list, id := preferences.List(args[1]), args[2]

		var (
			res bool
			err error
		)
		switch cmd {
		case "add":
			res, err = m.Add(list, id)
		case "remove":
			res, err = m.Remove(list, id)
		default:
			res, err = m.Toggle(list, id)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s %s %s: %t\n", cmd, list, id, res)
		return err

	case "clear":
		names, err := clearTargets(args[1:])
		if err != nil {
			return err
		}
		return m.Clear(names...)
	}
	return usage()
}

func clearTargets(args []string) ([]preferences.List, error) {
	if len(args) == 0 {
		return nil, usage()
	}

	var names []preferences.List
	for _, a := range args {
		switch a {
		case "whitelists":
			names = append(names, preferences.Whitelists...)
		case "blacklists":
			names = append(names, preferences.Blacklists...)
		default:
			names = append(names, preferences.List(a))
		}
	}
	return names, nil
}

func usage() error {
	return fmt.Errorf("usage: lists [flags] show | add|remove|toggle <list> <id> | clear whitelists|blacklists|<list>...\nlists: %v", preferences.AllLists)
}

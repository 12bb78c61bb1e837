package main

import (
	"fmt"
	flag "github.com/spf13/pflag"
	"log"
	"notifwhitelist/internal/app/domain/changelog"
	"notifwhitelist/internal/app/infrastructure/config"
	"notifwhitelist/internal/pkg/app"
	"os"
)

func main() {
	f := flag.NewFlagSet("notifwhitelist", flag.ExitOnError)
	config.Flags(f)
	version := f.Bool("version", false, "Print the plugin version and exit")
	_ = f.Parse(os.Args[1:])

	if *version {
		fmt.Println(changelog.Version)
		return
	}

	if err := app.New(f); err != nil {
		log.Fatal(err)
	}
}

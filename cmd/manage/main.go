// Command manage administers users and groups from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/vaughan-dsouza/yatube/internal/config"
	"github.com/vaughan-dsouza/yatube/internal/db"
	"github.com/vaughan-dsouza/yatube/internal/store"
)

func main() {
	root := newRootCmd(openStore, os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore() (*store.Store, func(), error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, nil, err
	}

	conn, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL, db.Options{MaxOpen: 2})
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	return store.New(conn), func() { conn.Close() }, nil
}

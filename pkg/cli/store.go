package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"bouncer/internal/app"
	"bouncer/internal/config"
	internaldb "bouncer/internal/db"
)

// store bundles the open database pools with the wired services.
type store struct {
	writeDB *sql.DB
	readDB  *sql.DB
	app     *app.App
}

// openStore opens the SQLite file, applies pending migrations, and wires the
// service layer.
func openStore(dbPath string) (*store, error) {
	writeDB, readDB, err := internaldb.OpenSQLitePair(dbPath, 0)
	if err != nil {
		return nil, err
	}
	if err := internaldb.RunMigrations(writeDB); err != nil {
		_ = writeDB.Close()
		_ = readDB.Close()
		return nil, err
	}
	cfg := &config.Config{DBPath: dbPath}
	return &store{
		writeDB: writeDB,
		readDB:  readDB,
		app:     app.New(app.Deps{Cfg: cfg, WriteDB: writeDB, ReadDB: readDB}),
	}, nil
}

func (s *store) Close() {
	_ = s.writeDB.Close()
	_ = s.readDB.Close()
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// Package assetdb is a project asset index backed by SQLite.
//
// The catalog (GUID, path, concrete type) lives in an assets table; loaded
// objects are kept in memory by GUID. Enumeration order is rowid order,
// which Rebuild deliberately shuffles the way a real index rebuild can.
package assetdb

import (
	"database/sql"
	"errors"
	"fmt"
	"path"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"auto-assigner/internal/host"
)

// ErrNotFound is returned when a GUID or path is not in the index.
var ErrNotFound = errors.New("asset not found")

var migrations = [][]string{
	{
		`CREATE TABLE IF NOT EXISTS assets (
			guid TEXT NOT NULL UNIQUE,
			path TEXT NOT NULL UNIQUE,
			type_name TEXT NOT NULL,
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assets_type ON assets(type_name)`,
	},
}

// Importable is implemented by every type embedding ScriptableObject.
type Importable interface {
	host.Asset
	bind(id host.InstanceID, assetPath string)
}

var _ host.AssetIndex = (*Database)(nil)

// Database is the asset index.
type Database struct {
	db      *sql.DB
	nextID  host.InstanceID
	objects map[string]Importable
	types   map[string]reflect.Type
}

// Open opens the index at dsn. Use ":memory:" for a throwaway index.
func Open(dsn string) (*Database, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open asset index: %w", err)
	}

	// Single connection: an in-memory database is per connection.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Database{
		db:      db,
		objects: make(map[string]Importable),
		types:   make(map[string]reflect.Type),
	}, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for i, stmts := range migrations {
		version := i + 1

		var exists int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %d: %w", version, err)
		}

		if exists > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", version, err)
		}

		for _, stmt := range stmts {
			if _, err := tx.Exec(stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d: %w", version, err)
			}
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", version, err)
		}
	}

	return nil
}

// Close closes the underlying database.
func (d *Database) Close() error {
	return d.db.Close()
}

// Import adds a to the index at assetPath and returns its GUID.
func (d *Database) Import(assetPath string, a Importable) (string, error) {
	assetPath = path.Clean(strings.TrimSpace(assetPath))
	key := typeKey(reflect.TypeOf(a))
	guid := strings.ReplaceAll(uuid.NewString(), "-", "")

	if _, err := d.db.Exec(
		"INSERT INTO assets (guid, path, type_name) VALUES (?, ?, ?)",
		guid, assetPath, key,
	); err != nil {
		return "", fmt.Errorf("import %s: %w", assetPath, err)
	}

	d.nextID--
	a.bind(d.nextID, assetPath)
	d.objects[guid] = a
	d.types[key] = reflect.TypeOf(a)

	return guid, nil
}

// Delete removes the asset from the index. Existing references to it become
// dead.
func (d *Database) Delete(guid string) error {
	res, err := d.db.Exec("DELETE FROM assets WHERE guid = ?", guid)
	if err != nil {
		return fmt.Errorf("delete %s: %w", guid, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete %s: %w", guid, ErrNotFound)
	}

	if obj, ok := d.objects[guid]; ok {
		if so, ok := obj.(interface{ markDestroyed() }); ok {
			so.markDestroyed()
		}

		delete(d.objects, guid)
	}

	return nil
}

// GUIDForPath returns the GUID of the asset stored at assetPath.
func (d *Database) GUIDForPath(assetPath string) (string, error) {
	var guid string

	err := d.db.QueryRow("SELECT guid FROM assets WHERE path = ?", path.Clean(assetPath)).Scan(&guid)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", assetPath, ErrNotFound)
	}

	if err != nil {
		return "", fmt.Errorf("lookup %s: %w", assetPath, err)
	}

	return guid, nil
}

// Rebuild re-creates the catalog rows in reverse enumeration order, which
// changes the native order FindAssets reports.
func (d *Database) Rebuild() error {
	rows, err := d.db.Query("SELECT guid, path, type_name FROM assets ORDER BY rowid DESC")
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	type row struct{ guid, path, typeName string }

	var all []row

	for rows.Next() {
		var r row
		if err := rows.Scan(&r.guid, &r.path, &r.typeName); err != nil {
			_ = rows.Close()
			return fmt.Errorf("rebuild scan: %w", err)
		}

		all = append(all, r)
	}

	if err := rows.Close(); err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM assets"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("rebuild clear: %w", err)
	}

	for _, r := range all {
		if _, err := tx.Exec(
			"INSERT INTO assets (guid, path, type_name) VALUES (?, ?, ?)",
			r.guid, r.path, r.typeName,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("rebuild insert %s: %w", r.path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("rebuild commit: %w", err)
	}

	return nil
}

// FindAssets implements host.AssetIndex.
func (d *Database) FindAssets(typ reflect.Type, folders ...string) ([]host.AssetRef, error) {
	var keys []string

	for key, t := range d.types {
		if t.AssignableTo(typ) {
			keys = append(keys, key)
		}
	}

	if len(keys) == 0 {
		return nil, nil
	}

	query, args := findQuery(keys, folders)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("find assets of %s: %w", typ, err)
	}
	defer rows.Close()

	var refs []host.AssetRef

	for rows.Next() {
		var ref host.AssetRef
		if err := rows.Scan(&ref.GUID, &ref.Path); err != nil {
			return nil, fmt.Errorf("find assets of %s: %w", typ, err)
		}

		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find assets of %s: %w", typ, err)
	}

	return refs, nil
}

func findQuery(keys, folders []string) (string, []any) {
	var b strings.Builder

	args := make([]any, 0, len(keys)+2*len(folders))

	b.WriteString("SELECT guid, path FROM assets WHERE type_name IN (")

	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString("?")
		args = append(args, k)
	}

	b.WriteString(")")

	if len(folders) > 0 {
		b.WriteString(" AND (")

		for i, f := range folders {
			if i > 0 {
				b.WriteString(" OR ")
			}

			prefix := strings.TrimSuffix(path.Clean(f), "/") + "/"
			b.WriteString("substr(path, 1, ?) = ?")
			args = append(args, utf8.RuneCountInString(prefix), prefix)
		}

		b.WriteString(")")
	}

	b.WriteString(" ORDER BY rowid")

	return b.String(), args
}

// LoadAsset implements host.AssetIndex.
func (d *Database) LoadAsset(guid string, typ reflect.Type) (host.Asset, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM assets WHERE guid = ?", guid).Scan(&count); err != nil {
		return nil, fmt.Errorf("load %s: %w", guid, err)
	}

	obj, ok := d.objects[guid]
	if count == 0 || !ok {
		return nil, fmt.Errorf("load %s: %w", guid, ErrNotFound)
	}

	if !reflect.TypeOf(obj).AssignableTo(typ) {
		return nil, nil
	}

	return obj, nil
}

func typeKey(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.PkgPath() + "." + t.Name()
}

package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens a shared in-memory sqlite database with the given tables,
// keyed by table name, and returns the same instance on later calls.
func NewDb(models map[string]any) *Db {
	once.Do(
		func() {
			db = open(models)
		},
	)

	return db
}

func open(models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: models,
	}

	if err := newDbMock.init(); err != nil {
		panic(fmt.Sprintf("failed to create tables. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB deletes every row of every table, including id sequences.
func (d *Db) ClearDB() error {
	for _, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return err
		}
	}
	return d.checkTables()
}

func (d *Db) init() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		modelList := make([]any, 0, len(d.models))
		for _, model := range d.models {
			modelList = append(modelList, model)

			if err := tx.Migrator().DropTable(model); err != nil {
				return err
			}
		}

		if err := tx.AutoMigrate(modelList...); err != nil {
			return err
		}

		for _, model := range modelList {
			if !tx.Migrator().HasTable(model) {
				return fmt.Errorf("table for model %T was not created", model)
			}
		}
		return nil
	})
}

func (d *Db) checkTables() error {
	for _, model := range d.models {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

package server

import (
	"database/sql"
	"sync"

	"civicmap/backend/classify"
	"civicmap/backend/image"
	"civicmap/backend/rabbitmq"
	"civicmap/backend/report"
	"civicmap/common"
)

// Shared handler state, wired once in StartService. Tests substitute the
// interfaces directly.
var (
	store     report.Repository
	pipeline  *classify.Pipeline
	uploads   image.Uploader
	publisher *rabbitmq.Publisher
)

var (
	serverDBOnce sync.Once
	serverDB     *sql.DB
	serverDBErr  error
)

func getServerDB() (*sql.DB, error) {
	serverDBOnce.Do(func() {
		serverDB, serverDBErr = common.DBConnect()
	})
	return serverDB, serverDBErr
}

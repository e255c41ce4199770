package common

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
)

var (
	mysqlUser     = flag.String("mysql_user", "server", "MySQL user.")
	mysqlPassword = flag.String("mysql_password", "secret", "MySQL password.")
	mysqlHost     = flag.String("mysql_host", "localhost", "MySQL host.")
	mysqlPort     = flag.String("mysql_port", "3306", "MySQL port.")
	mysqlDb       = flag.String("mysql_db", "civicmap", "MySQL database to use.")
)

func mysqlAddress() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		*mysqlUser, *mysqlPassword, *mysqlHost, *mysqlPort, *mysqlDb)
}

func DBConnect() (*sql.DB, error) {
	db, err := sql.Open("mysql", mysqlAddress())
	if err != nil {
		log.Errorf("Failed to connect to the database: %v", err)
		return nil, err
	}

	maxOpen := envInt([]string{"CIVICMAP_DB_MAX_OPEN_CONNS", "DB_MAX_OPEN_CONNS"}, 25)
	maxIdle := envInt([]string{"CIVICMAP_DB_MAX_IDLE_CONNS", "DB_MAX_IDLE_CONNS"}, 10)
	connMaxLifetimeMin := envInt([]string{"CIVICMAP_DB_CONN_MAX_LIFETIME_MIN", "DB_CONN_MAX_LIFETIME_MIN"}, 5)
	pingMaxWaitSec := envInt([]string{"CIVICMAP_DB_PING_MAX_WAIT_SEC", "DB_PING_MAX_WAIT_SEC"}, 60)

	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if connMaxLifetimeMin > 0 {
		db.SetConnMaxLifetime(time.Duration(connMaxLifetimeMin) * time.Minute)
	}

	// The database container may still be coming up; wait for it.
	deadline := time.Now().Add(time.Duration(pingMaxWaitSec) * time.Second)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		pingErr := db.PingContext(ctx)
		cancel()
		if pingErr == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database ping timeout after %ds: %w", pingMaxWaitSec, pingErr)
		}
		time.Sleep(time.Second)
	}
	return db, nil
}

func envInt(keys []string, def int) int {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return def
}

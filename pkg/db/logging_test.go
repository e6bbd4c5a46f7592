package db

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/storefront/pkg/logger"
)

func TestQueryLoggerReportsFailures(t *testing.T) {
	buf := &bytes.Buffer{}
	q := newQueryLogger(logger.New(logger.Options{ServiceName: "test", Format: logger.FormatJSON, Output: buf}), time.Second)

	sql := func() (string, int64) { return "SELECT * FROM snapshots", 0 }
	q.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	if buf.Len() != 0 {
		t.Fatalf("record not found must not be logged, got %s", buf.String())
	}

	q.Trace(context.Background(), time.Now(), sql, errors.New("database is locked"))
	if !bytes.Contains(buf.Bytes(), []byte("db.query_failed")) || !bytes.Contains(buf.Bytes(), []byte("SELECT * FROM snapshots")) {
		t.Fatalf("expected failed query entry, got %s", buf.String())
	}
}

func TestQueryLoggerReportsSlowQueries(t *testing.T) {
	buf := &bytes.Buffer{}
	q := newQueryLogger(logger.New(logger.Options{ServiceName: "test", Format: logger.FormatJSON, Output: buf}), time.Millisecond)

	q.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) { return "UPDATE snapshots", 1 }, nil)
	if !bytes.Contains(buf.Bytes(), []byte("db.slow_query")) {
		t.Fatalf("expected slow query entry, got %s", buf.String())
	}

	buf.Reset()
	q.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) { return "UPDATE snapshots", 1 }, nil)
	if buf.Len() != 0 {
		t.Fatalf("silent mode must not log, got %s", buf.String())
	}
}

func TestNewQueryLoggerWithoutLogger(t *testing.T) {
	if newQueryLogger(nil, time.Second) != gormlogger.Discard {
		t.Fatal("expected discard logger")
	}
}

package testdata

import (
	stdsql "database/sql"
	"time"
)

// CrossPackage tests cross-package types
type CrossPackage struct {
	Name      string
	Timestamp time.Time
	Duration  time.Duration
	Nullable  stdsql.NullString
}

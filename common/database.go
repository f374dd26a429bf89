package common

import (
	"sync/atomic"

	"github.com/handboekai/handboek-api/common/config"
)

var UsingSQLite atomic.Bool
var UsingPostgreSQL atomic.Bool

var SQLitePath = config.SQLitePath
var SQLiteBusyTimeout = config.SQLiteBusyTimeout

package common

import "time"

// Version is stamped at build time via -ldflags.
var Version = "v0.1.0-dev"

// StartTime records process start for uptime reporting on the status endpoint.
var StartTime = time.Now().Unix()

/*
main.go - Application entry point

PURPOSE:
  The date-engine command: serves the HTTP API and runs one-off calendar
  calculations from the shell.

COMMANDS:
  serve                     Start the HTTP server
  age FROM TO               Exact and integer ages between two dates
  schedule KIND CALC LAST   Generate a schedule (or a plan with --birth)

STARTUP SEQUENCE (serve):
  1. Parse and validate flags
  2. Build the logrus logger
  3. Initialize the store (SQLite, or in-memory when --db is empty)
  4. Create API handler and router
  5. Start the retention sweeper when --retention-years is set
  6. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the sweeper and close the database
  4. Exit

EXAMPLES:
  # Run with file database
  date-engine serve --db=./data/schedules.db

  # Run with in-memory database
  date-engine serve --db=":memory:"

  # Ages and schedules
  date-engine age 1957-06-30 2022-02-15
  date-engine schedule monthly_first_day 2022-02-15 2023-02-28

SEE ALSO:
  - config.go: Flags and validation
  - commands.go: Command definitions
  - api/server.go: Router configuration
*/
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

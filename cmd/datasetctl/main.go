// Command datasetctl inspects listing datasets and exports them to SQLite
// snapshots the server can load with DATASET_SQLITE_PATH.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := newRootCmd(logger, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

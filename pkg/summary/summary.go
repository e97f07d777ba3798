// Package summary runs one socket summary: check the source, read it, format
// it and print it.
package summary

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/AeroNotix/sockstat/pkg/config"
	"github.com/AeroNotix/sockstat/pkg/logging"
	"github.com/AeroNotix/sockstat/pkg/procnet"
)

// Run prints the socket summary described by cfg to out. Every failure is
// logged at ERROR before it is returned.
func Run(cfg *config.Config, log *logging.Logger, out io.Writer) error {
	src, err := procnet.NewSource(cfg.ProcRoot)
	if err == nil {
		err = src.CheckAvailable()
	}
	if err != nil {
		log.Errorf("Error: '%s' not found or not readable. Ensure you are running on a Linux system with appropriate permissions.",
			procnet.SockstatPath(cfg.ProcRoot))
		log.Debugf("%v", err)
		return err
	}

	log.Infof("Welcome to the Socket Summary Analyzer")

	result, err := fetch(cfg, src, log)
	if err != nil {
		log.Errorf("Failed to retrieve socket summary")
		return err
	}

	log.Infof("Socket Summary:")
	fmt.Fprintln(out, result)
	return nil
}

func fetch(cfg *config.Config, src *procnet.Source, log *logging.Logger) (string, error) {
	start := time.Now()
	log.Infof("Reading socket statistics from %s...", src.Path())

	snap, err := src.Read()
	if err != nil {
		logReadError(log, src, err)
		return "", err
	}
	logElapsed(log, start)
	log.Debugf("Captured %d lines", len(snap.Lines()))

	switch {
	case !cfg.Structured():
		return procnet.FormatRaw(snap), nil
	case cfg.Detailed:
		return procnet.FormatStructured(procnet.NewDetailedReport(snap))
	}
	fields := procnet.ExtractFields(snap)
	log.Debugf("Extracted fields: %+v", fields)
	return procnet.FormatStructured(fields)
}

func logReadError(log *logging.Logger, src *procnet.Source, err error) {
	if errors.Is(err, procnet.ErrEmptyResult) {
		log.Errorf("No data received from %s", src.Path())
		return
	}
	log.Errorf("Failed to read %s: %v", src.Path(), err)
}

func logElapsed(log *logging.Logger, start time.Time) {
	log.Infof("Success! Retrieved socket summary in %.4fs.", time.Since(start).Seconds())
}

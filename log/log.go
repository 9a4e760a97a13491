package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	WarningLog *log.Logger = log.New(io.Discard, "", 0)
	InfoLog    *log.Logger = log.New(io.Discard, "", 0)
	ErrorLog   *log.Logger = log.New(io.Discard, "", 0)
)

var logFileName = filepath.Join(os.TempDir(), "textpanel.log")

var globalLogFile *os.File

// Initialize should be called once at the beginning of the program to set up logging.
// Loggers are usable (discarding) before it is called, so library code can log freely.
func Initialize() {
	if globalLogFile != nil {
		return
	}
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open log file: %s\n", err)
		InitDebug()
		return
	}

	InfoLog = log.New(f, "INFO:", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(f, "WARNING:", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(f, "ERROR:", log.Ldate|log.Ltime|log.Lshortfile)

	globalLogFile = f

	InitDebug()
}

// FileName returns the path of the log file.
func FileName() string {
	return logFileName
}

// Close closes the log files opened by Initialize.
func Close() {
	CloseDebug()
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
}

// SetOutput points every logger at w. Used by tests that assert on log output.
func SetOutput(w io.Writer) {
	InfoLog = log.New(w, "INFO:", 0)
	WarningLog = log.New(w, "WARNING:", 0)
	ErrorLog = log.New(w, "ERROR:", 0)
}

// A reimplementation of a portion of Go's standard logging library (log)
// that better suits the needs of Amidash.

package logger

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"main/errors"
)

var errInvalidInterfaceType = errors.NewError("logger", errors.ErrInvalidInterfaceType.Error(), nil)

// mu serializes the shared buffer; handlers log concurrently.
var mu sync.Mutex

var buf bytes.Buffer

var useLogFile = false
var logFileOpenFailCount = 0
var logFileOpenFailLimit = 20
var logFileName string

var (
	infoLogger  = log.New(&buf, "INFO: ", log.Ldate|log.Ltime)
	debugLogger = log.New(&buf, "DEBUG: ", log.Ldate|log.Ltime)
	warnLogger  = log.New(&buf, "WARN: ", log.Ldate|log.Ltime)
	errorLogger = log.New(&buf, "ERROR: ", log.Ldate|log.Ltime)
	fatalLogger = log.New(&buf, "FATAL: ", log.Ldate|log.Ltime)
)

// UseLogFile starts logging to a timestamped file under logPath as well as
// the console. The path is created if it does not exist.
func UseLogFile(logPath string) error {
	err := os.MkdirAll(logPath, os.ModePerm)
	if err != nil {
		return err
	}

	logFileName = filepath.Join(logPath, time.Now().Format("2006-01-02_150405")+".log")
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		return errors.NewError("logger", "could not open log file", err)
	}
	defer logFile.Close()

	useLogFile = true
	return nil
}

// Write the log to console, or console and log file. Buffer is reset automatically.
func write() {
	if logFileOpenFailCount > logFileOpenFailLimit {
		useLogFile = false
		warnLogger.Printf("Log file failed to open too many times. Logging to file has been disabled to prevent further errors")
	}

	if useLogFile {
		logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
		if err != nil {
			errorLogger.Printf(errors.NewError("logger", "could not open log file", err).Error())
			logFileOpenFailCount += 1
		} else {
			defer logFile.Close()
			f := bufio.NewWriter(logFile)
			f.WriteString(buf.String())
			f.Flush()
		}
	}

	fmt.Print(buf.String())
	buf.Reset()
}

// emit writes one entry through l under the lock. Unsupported format
// types escalate to a fatal entry.
func emit(l *log.Logger, format any, v ...any) {
	mu.Lock()
	defer mu.Unlock()

	switch a := format.(type) {
	case string:
		l.Printf(a, v...)
	case errors.ErrorWrapper:
		l.Printf(a.AsString(), v...)
	case error:
		l.Printf(a.Error(), v...)
	default:
		fatalLogger.Printf(errInvalidInterfaceType.Error())
		write()
		os.Exit(1)
	}
	write()
}

func Info(format any, v ...any) {
	emit(infoLogger, format, v...)
}

func Debug(format any, v ...any) {
	emit(debugLogger, format, v...)
}

func Warn(format any, v ...any) {
	emit(warnLogger, format, v...)
}

func Error(format any, v ...any) {
	emit(errorLogger, format, v...)
}

// This will log the error, then call os.Exit(1)
func Fatal(format any, v ...any) {
	emit(fatalLogger, format, v...)
	os.Exit(1)
}

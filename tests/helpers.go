package tests

import (
	"fmt"
	"os"
	fp "path/filepath"
	"runtime"
)

// Get the resource path (resPath). You can specify directories that are located within
// resPath as well.
func GetResPath(f ...string) string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		fmt.Println("tests: Cannot determine repository root")
		os.Exit(1)
	}

	joined := fp.Join(f...)
	return fp.Join(fp.Dir(fp.Dir(file)), "res", joined)
}

package main

import (
	"fmt"
	"os"

	"codeberg.org/kvo/std"
	"golang.org/x/term"

	"main/config"
	"main/errors"
	"main/logger"
	"main/server"
)

const version = "amidash v1.0"

func main() {
	tlsConns := true

	if len(os.Args) > 2 || len(os.Args) == 2 && os.Args[1] != "-w" {
		os.Stderr.WriteString(errors.ErrBadCommandUsage.Error() + "\n")
		os.Stderr.WriteString("usage: amidash [-w]\n")
		os.Exit(1)
	}

	if std.Contains(os.Args, "-w") {
		tlsConns = false
	}

	cfg := config.Load()

	// The session store password never goes in the config file.
	fmt.Print("Passphrase to session store (leave empty if none): ")
	pwdInput, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		os.Stderr.WriteString("amidash: Cannot read session store passphrase.\n")
		os.Exit(1)
	}

	err = server.Configure(cfg, string(pwdInput))
	if err != nil {
		logger.Fatal(err)
	}

	server.Announce(version)
	err = server.Run(tlsConns)
	if err != nil {
		logger.Fatal(err)
	}
}

// Command hashpass prints an argon2id hash suitable for AUTH_PASSWORD_HASH.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"vaultcast/auth"
)

func main() {
	password := ""
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintf(os.Stderr, "cannot read password: %v\n", err)
			os.Exit(1)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if err := auth.ValidateLogin(auth.LoginRequest{Username: "hashpass", Password: password}); err != nil {
		fmt.Fprintf(os.Stderr, "invalid password: %v\n", err)
		os.Exit(2)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

// Command hashpw generates a bcrypt hash for the ADMIN_PASSWORD
// environment variable. The password is read from stdin so it does not
// land in shell history.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/poolcost/pool-cost-tracker/internal/utils"
)

func main() {
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(os.Stderr, "failed to read password:", err)
		os.Exit(1)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		fmt.Fprintln(os.Stderr, "password must not be empty")
		os.Exit(1)
	}

	hash, err := utils.HashAdminPassword(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to hash password:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

package main

import (
	"fmt"
	"os"

	"github.com/foodordering/food-server-go/internal/util"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/hash-password.go <password>\n")
		os.Exit(1)
	}

	password := os.Args[1]
	if !util.IsStrongPassword(password) {
		fmt.Fprintf(os.Stderr, "Warning: password would be rejected at signup\n")
	}

	salt, hash := util.NewPasswordCipher(util.DefaultHashIterations).Encrypt(password)
	fmt.Printf("salt=%s\npassword=%s\n", salt, hash)
}

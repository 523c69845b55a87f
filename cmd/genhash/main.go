package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func generatePasswordHash(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Prints a bcrypt hash for seeding the first admin user.
func main() {
	password := "AdminTujenge2026!"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	hash, _ := generatePasswordHash(password, 14)
	fmt.Println(hash)
}

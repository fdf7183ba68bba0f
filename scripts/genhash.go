//go:build ignore

// genhash prints password hashes for seeding users by hand:
//
//	go run scripts/genhash.go <password>...
package main

import (
	"fmt"
	"os"

	"go-jobs-backend/pkg/security"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: go run scripts/genhash.go <password>...")
		os.Exit(2)
	}

	hasher := security.NewPasswordHasher(bcrypt.DefaultCost)
	for _, pass := range os.Args[1:] {
		hash, err := hasher.Hash(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Hash: %s\n", hash)
	}
}

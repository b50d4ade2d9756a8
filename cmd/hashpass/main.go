// Command hashpass prints a bcrypt hash for ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hashpass -cost 12 'my admin password'
package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/storefront-api/internal/auth"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: hashpass [-cost n] <password>")
	}
	hash, err := auth.HashPassword(flag.Arg(0), *cost)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}
	fmt.Println(hash)
}

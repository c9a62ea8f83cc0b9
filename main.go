package main

import (
	"log"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("could not start application: %v", err)
	}
}

package main

import (
	"log"

	"netsim/internal/dashboard"
)

func main() {
	if err := dashboard.Render("build"); err != nil {
		log.Fatal(err)
	}
}
